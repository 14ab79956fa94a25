package firebase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	apperrors "deyelegliz/pkg/errors"
)

func TestMapProviderError(t *testing.T) {
	cases := []struct {
		msg  string
		code string
	}{
		{"INVALID_CODE", apperrors.CodeInvalidCredentials},
		{"SESSION_EXPIRED", apperrors.CodeInvalidCredentials},
		{"INVALID_PHONE_NUMBER : TOO_SHORT", apperrors.CodeMalformedIdentity},
		{"CAPTCHA_CHECK_FAILED", apperrors.CodeChallengeFailed},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", apperrors.CodeTooManyRequests},
		{"PHONE_NUMBER_EXISTS", apperrors.CodeIdentityInUse},
		{"SOMETHING_NEW", apperrors.CodeInternal},
	}
	for _, tc := range cases {
		err := MapProviderError(&googleapi.Error{Code: 400, Message: tc.msg})
		assert.True(t, apperrors.Is(err, tc.code), tc.msg)
	}
}

func TestMapProviderErrorNonAPI(t *testing.T) {
	err := MapProviderError(errors.New("dial tcp: timeout"))
	assert.True(t, apperrors.Is(err, apperrors.CodeInternal))
}
