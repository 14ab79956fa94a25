package recaptcha

import (
	"context"
	"fmt"

	recaptchaapi "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
)

// Assessment is the subset of a reCAPTCHA Enterprise verdict we act on.
type Assessment struct {
	Valid         bool
	InvalidReason string
	Action        string
	Score         float32
	Reasons       []string
}

type assessmentClient interface {
	CreateAssessment(ctx context.Context, req *recaptchaenterprisepb.CreateAssessmentRequest, opts ...gax.CallOption) (*recaptchaenterprisepb.Assessment, error)
}

type Assessor struct {
	client   assessmentClient
	closer   func() error
	project  string
	siteKey  string
	minScore float32
}

func NewAssessor(ctx context.Context, projectID, siteKey string, minScore float64, opts ...option.ClientOption) (*Assessor, error) {
	client, err := recaptchaapi.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reCAPTCHA client: %w", err)
	}
	return &Assessor{
		client:   client,
		closer:   client.Close,
		project:  projectID,
		siteKey:  siteKey,
		minScore: float32(minScore),
	}, nil
}

func (a *Assessor) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

func (a *Assessor) assess(ctx context.Context, token, userIP, userAgent string) (*Assessment, error) {
	resp, err := a.client.CreateAssessment(ctx, &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: "projects/" + a.project,
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       a.siteKey,
				UserIpAddress: userIP,
				UserAgent:     userAgent,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	out := &Assessment{}
	if props := resp.GetTokenProperties(); props != nil {
		out.Valid = props.GetValid()
		out.InvalidReason = props.GetInvalidReason().String()
		out.Action = props.GetAction()
	}
	if risk := resp.GetRiskAnalysis(); risk != nil {
		out.Score = risk.GetScore()
		for _, r := range risk.GetReasons() {
			out.Reasons = append(out.Reasons, r.String())
		}
	}
	return out, nil
}

// Verify rejects tokens that are invalid, were minted for another action or score below the threshold.
func (a *Assessor) Verify(ctx context.Context, token, action, userIP, userAgent string) error {
	if token == "" {
		return errors.ChallengeFailed("Security check token is required", nil)
	}
	result, err := a.assess(ctx, token, userIP, userAgent)
	if err != nil {
		return errors.Internal("Failed to run security check", err)
	}
	if !result.Valid {
		logger.Warn("recaptcha token invalid: %s", result.InvalidReason)
		return errors.ChallengeFailed("Security check failed, try again", nil)
	}
	if action != "" && result.Action != action {
		logger.Warn("recaptcha action mismatch: expected %s, got %s", action, result.Action)
		return errors.ChallengeFailed("Security check failed, try again", nil)
	}
	if result.Score < a.minScore {
		logger.Warn("recaptcha score %.2f below %.2f (reasons: %v)", result.Score, a.minScore, result.Reasons)
		return errors.ChallengeFailed("Security check failed, try again", nil)
	}
	return nil
}
