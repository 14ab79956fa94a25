package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/repository"
	"deyelegliz/internal/domain/service"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
	"deyelegliz/pkg/utils"
)

const challengeActionSendCode = "send_code"

type AuthOptions struct {
	CallingCode     string
	VerificationTTL time.Duration
	VendorTrial     time.Duration
}

type AuthUseCase struct {
	userRepo         repository.UserRepository
	verificationRepo repository.PhoneVerificationRepository
	firebaseAuth     FirebaseAuthClient
	phone            PhoneVerifier
	challenge        ChallengeVerifier
	opts             AuthOptions
	now              Clock
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	verificationRepo repository.PhoneVerificationRepository,
	firebaseAuth FirebaseAuthClient,
	phone PhoneVerifier,
	challenge ChallengeVerifier,
	opts AuthOptions,
) *AuthUseCase {
	if opts.VerificationTTL <= 0 {
		opts.VerificationTTL = 15 * time.Minute
	}
	if opts.VendorTrial <= 0 {
		opts.VendorTrial = 30 * 24 * time.Hour
	}
	return &AuthUseCase{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		firebaseAuth:     firebaseAuth,
		phone:            phone,
		challenge:        challenge,
		opts:             opts,
		now:              time.Now,
	}
}

// ChallengeInput is the invisible challenge answer sent with a code request.
type ChallengeInput struct {
	Token     string
	UserIP    string
	UserAgent string
}

type AuthResult struct {
	Session *entity.AuthSession `json:"session"`
	Profile *ProfileView        `json:"profile"`
}

// ProfileView is a profile with the vendor subscription computed for display.
type ProfileView struct {
	*entity.UserProfile
	Subscription *entity.SubscriptionStatus `json:"subscription,omitempty"`
}

func (uc *AuthUseCase) profileView(p *entity.UserProfile) *ProfileView {
	view := &ProfileView{UserProfile: p}
	if p.Vendor != nil {
		st := p.Vendor.Subscription(uc.now())
		view.Subscription = &st
	}
	return view
}

func (uc *AuthUseCase) SendSignupCode(ctx context.Context, form *entity.SignupForm, ch ChallengeInput) (*entity.PhoneVerification, error) {
	if errs := service.ValidateSignup(form); !errs.Empty() {
		return nil, errors.Validation(errs)
	}
	return uc.sendCode(ctx, entity.PurposeSignup, form.Phone, form, ch)
}

func (uc *AuthUseCase) SendLoginCode(ctx context.Context, phone string, ch ChallengeInput) (*entity.PhoneVerification, error) {
	if len(utils.Digits(phone)) < 8 {
		return nil, errors.Validation(map[string]string{"phone": "phone must be at least 8 characters"})
	}
	return uc.sendCode(ctx, entity.PurposeLogin, phone, nil, ch)
}

func (uc *AuthUseCase) sendCode(ctx context.Context, purpose entity.VerificationPurpose, rawPhone string, form *entity.SignupForm, ch ChallengeInput) (*entity.PhoneVerification, error) {
	phone := utils.NormalizePhone(rawPhone, uc.opts.CallingCode)
	if phone == "" {
		return nil, errors.MalformedIdentity("The phone number is not valid", nil)
	}

	if uc.challenge != nil {
		if err := uc.challenge.Verify(ctx, ch.Token, challengeActionSendCode, ch.UserIP, ch.UserAgent); err != nil {
			return nil, err
		}
	}

	sessionInfo, err := uc.phone.SendCode(ctx, phone, ch.Token)
	if err != nil {
		logger.Warn("send code to %s failed: %v", phone, err)
		return nil, err
	}

	now := uc.now()
	if form != nil {
		form.Phone = phone
	}
	v := &entity.PhoneVerification{
		ID:          uuid.New().String(),
		Purpose:     purpose,
		PhoneNumber: phone,
		SessionInfo: sessionInfo,
		Signup:      form,
		State:       entity.StateCodeSent,
		CreatedAt:   now,
		ExpiresAt:   now.Add(uc.opts.VerificationTTL),
	}
	if err := uc.verificationRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Verify confirms the code. A wrong code leaves the verification retryable.
func (uc *AuthUseCase) Verify(ctx context.Context, verificationID, code string) (*AuthResult, error) {
	if !service.ValidVerificationCode(code) {
		return nil, errors.Validation(map[string]string{"code": "code must be exactly 6 digits"})
	}

	v, err := uc.verificationRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	if v.State != entity.StateCodeSent {
		return nil, errors.Conflict("This verification has already been used")
	}
	if v.IsExpired(uc.now()) {
		return nil, errors.New(errors.CodeVerificationExpired, "The verification has expired, request a new code", http.StatusGone, nil)
	}

	session, err := uc.phone.ConfirmCode(ctx, v.SessionInfo, code)
	if err != nil {
		if errors.Is(err, errors.CodeInvalidCredentials) {
			if recErr := uc.verificationRepo.RecordAttempt(ctx, v.ID); recErr != nil {
				logger.Warn("record attempt on verification %s failed: %v", v.ID, recErr)
			}
		}
		return nil, err
	}

	switch v.Purpose {
	case entity.PurposeSignup:
		return uc.completeSignup(ctx, v, session)
	default:
		return uc.completeLogin(ctx, v, session)
	}
}

func (uc *AuthUseCase) completeSignup(ctx context.Context, v *entity.PhoneVerification, session *entity.AuthSession) (*AuthResult, error) {
	if v.Signup == nil {
		return nil, errors.BadRequest("Verification carries no signup form", nil)
	}

	_, err := uc.userRepo.GetByID(ctx, session.UID)
	if err == nil {
		return nil, errors.IdentityInUse("An account already exists for this phone number")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	profile := uc.newProfile(session.UID, v.Signup)
	if err := uc.userRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return nil, errors.IdentityInUse("An account already exists for this phone number")
		}
		return nil, err
	}

	if err := uc.firebaseAuth.SetDisplayName(ctx, session.UID, profile.Name); err != nil {
		logger.Warn("set display name for %s failed: %v", session.UID, err)
	}
	if err := uc.verificationRepo.MarkCompleted(ctx, v.ID, entity.StateVerified, session.UID); err != nil {
		logger.Warn("mark verification %s verified failed: %v", v.ID, err)
	}

	logger.Info("new %s account %s", v.Signup.UserType, session.UID)
	return &AuthResult{Session: session, Profile: uc.profileView(profile)}, nil
}

func (uc *AuthUseCase) completeLogin(ctx context.Context, v *entity.PhoneVerification, session *entity.AuthSession) (*AuthResult, error) {
	profile, err := uc.userRepo.GetByID(ctx, session.UID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			if revokeErr := uc.firebaseAuth.RevokeSessions(ctx, session.UID); revokeErr != nil {
				logger.Warn("revoke session for profileless %s failed: %v", session.UID, revokeErr)
			}
			return nil, errors.ProfileMissing()
		}
		return nil, err
	}

	if err := uc.verificationRepo.MarkCompleted(ctx, v.ID, entity.StateSignedIn, session.UID); err != nil {
		logger.Warn("mark verification %s signed in failed: %v", v.ID, err)
	}
	return &AuthResult{Session: session, Profile: uc.profileView(profile)}, nil
}

func (uc *AuthUseCase) newProfile(uid string, form *entity.SignupForm) *entity.UserProfile {
	now := uc.now()
	profile := &entity.UserProfile{
		ID:            uid,
		Email:         form.Email,
		Name:          form.Name,
		Phone:         form.Phone,
		Country:       form.Address.Country,
		Department:    form.Address.Department,
		City:          form.Address.ResolvedCity(),
		State:         form.Address.State,
		IsVendor:      form.IsVendor(),
		PhoneVerified: true,
		CreatedAt:     now,
	}
	if form.IsVendor() {
		profile.Vendor = entity.NewVendorApplication(
			form.BusinessName, form.BusinessAddress, form.BusinessPhone,
			form.Address, now, uc.opts.VendorTrial,
		)
	}
	return profile
}

func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.firebaseAuth.RevokeSessions(ctx, uid); err != nil {
		return errors.Internal("Failed to sign out", err)
	}
	return nil
}

func (uc *AuthUseCase) Me(ctx context.Context, uid string) (*ProfileView, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.ProfileMissing()
		}
		return nil, err
	}
	return uc.profileView(profile), nil
}
