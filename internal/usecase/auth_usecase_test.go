package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/pkg/errors"
)

type authFixture struct {
	uc            *AuthUseCase
	users         *memUsers
	verifications *memVerifications
	auth          *fakeAuth
	phone         *fakePhone
}

func newAuthFixture(profiles ...*entity.UserProfile) *authFixture {
	f := &authFixture{
		users:         newMemUsers(profiles...),
		verifications: newMemVerifications(),
		auth:          &fakeAuth{},
		phone:         &fakePhone{session: &entity.AuthSession{UID: "uid-1", IDToken: "id-token", RefreshToken: "refresh"}},
	}
	f.uc = NewAuthUseCase(f.users, f.verifications, f.auth, f.phone, nil, AuthOptions{CallingCode: "509"})
	f.uc.now = fixedClock
	return f
}

func vendorSignupForm() *entity.SignupForm {
	return &entity.SignupForm{
		UserType:        "vendor",
		Name:            "Jean Baptiste",
		Phone:           "3412 3456",
		Address:         entity.Address{Country: entity.CountryHaiti, Department: "Lwès", City: "Dèlma"},
		BusinessName:    "Boutik Jean",
		BusinessAddress: "12 Ri Kapwa, Dèlma",
		BusinessPhone:   "34123456",
	}
}

func TestSendSignupCodeRejectsInvalidFormBeforeNetwork(t *testing.T) {
	f := newAuthFixture()
	form := vendorSignupForm()
	form.Name = "Jo"
	form.Address.City = "Okap"

	_, err := f.uc.SendSignupCode(context.Background(), form, ChallengeInput{})

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "name")
	assert.Contains(t, appErr.Details, "city")
	assert.Empty(t, f.phone.sent)
}

func TestSendLoginCodeNormalizesPhoneAndStoresCodeSent(t *testing.T) {
	f := newAuthFixture()

	v, err := f.uc.SendLoginCode(context.Background(), "3412-3456", ChallengeInput{Token: "tok"})

	require.NoError(t, err)
	assert.Equal(t, []string{"+50934123456"}, f.phone.sent)
	assert.Equal(t, entity.StateCodeSent, v.State)
	assert.Equal(t, fixedNow.Add(15*time.Minute), v.ExpiresAt)

	stored, err := f.verifications.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "session-info", stored.SessionInfo)
}

func TestSendCodeStopsOnFailedChallenge(t *testing.T) {
	f := newAuthFixture()
	challenge := &fakeChallenge{err: errors.ChallengeFailed("Security check failed, try again", nil)}
	f.uc.challenge = challenge

	_, err := f.uc.SendLoginCode(context.Background(), "34123456", ChallengeInput{Token: "bad"})

	assert.True(t, errors.Is(err, errors.CodeChallengeFailed))
	assert.Equal(t, 1, challenge.calls)
	assert.Empty(t, f.phone.sent)
}

func TestVerifyWrongCodeStaysRetryable(t *testing.T) {
	f := newAuthFixture()
	v, err := f.uc.SendLoginCode(context.Background(), "34123456", ChallengeInput{})
	require.NoError(t, err)

	f.phone.confirmErr = errors.InvalidCredentials("The code is incorrect or has expired", nil)
	_, err = f.uc.Verify(context.Background(), v.ID, "000000")
	assert.True(t, errors.Is(err, errors.CodeInvalidCredentials))

	stored, _ := f.verifications.GetByID(context.Background(), v.ID)
	assert.Equal(t, entity.StateCodeSent, stored.State)
	assert.Equal(t, 1, stored.Attempts)

	f.phone.confirmErr = nil
	_, err = f.uc.Verify(context.Background(), v.ID, "123456")
	assert.True(t, errors.Is(err, errors.CodeProfileMissing))
}

func TestVerifyRejectsMalformedCode(t *testing.T) {
	f := newAuthFixture()

	_, err := f.uc.Verify(context.Background(), "any", "12ab")

	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestVerifySignupCreatesVendorWithTrial(t *testing.T) {
	f := newAuthFixture()
	v, err := f.uc.SendSignupCode(context.Background(), vendorSignupForm(), ChallengeInput{})
	require.NoError(t, err)

	result, err := f.uc.Verify(context.Background(), v.ID, "123456")
	require.NoError(t, err)

	profile := result.Profile.UserProfile
	assert.True(t, profile.PhoneVerified)
	assert.True(t, profile.IsVendor)
	assert.Equal(t, "+50934123456", profile.Phone)
	assert.Equal(t, "Dèlma", profile.City)
	require.NotNil(t, profile.Vendor)
	assert.Equal(t, entity.VendorApproved, profile.Vendor.Status)
	assert.Equal(t, fixedNow.Add(30*24*time.Hour), *profile.Vendor.TrialExpiration)
	assert.Equal(t, *profile.Vendor.TrialExpiration, *profile.Vendor.SubscriptionExpiration)
	assert.False(t, profile.Vendor.PaymentVerified)
	require.NotNil(t, result.Profile.Subscription)
	assert.True(t, result.Profile.Subscription.IsTrial)
	assert.Equal(t, 30, result.Profile.Subscription.DaysLeft)

	assert.Equal(t, "Jean Baptiste", f.auth.names["uid-1"])
	stored, _ := f.verifications.GetByID(context.Background(), v.ID)
	assert.Equal(t, entity.StateVerified, stored.State)
}

func TestVerifySignupWithExistingProfileIsIdentityInUse(t *testing.T) {
	existing := buyerProfile("uid-1")
	f := newAuthFixture(existing)
	v, err := f.uc.SendSignupCode(context.Background(), vendorSignupForm(), ChallengeInput{})
	require.NoError(t, err)

	_, err = f.uc.Verify(context.Background(), v.ID, "123456")

	assert.True(t, errors.Is(err, errors.CodeIdentityInUse))
	stored, _ := f.users.GetByID(context.Background(), "uid-1")
	assert.Equal(t, "Marie Claire", stored.Name)
	assert.False(t, stored.IsVendor)
}

func TestVerifyLoginWithoutProfileReturnsNoSession(t *testing.T) {
	f := newAuthFixture()
	v, err := f.uc.SendLoginCode(context.Background(), "34123456", ChallengeInput{})
	require.NoError(t, err)

	result, err := f.uc.Verify(context.Background(), v.ID, "123456")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, errors.CodeProfileMissing))
	assert.Equal(t, []string{"uid-1"}, f.auth.revoked)
}

func TestVerifyLoginSignsIn(t *testing.T) {
	f := newAuthFixture(buyerProfile("uid-1"))
	v, err := f.uc.SendLoginCode(context.Background(), "34123456", ChallengeInput{})
	require.NoError(t, err)

	result, err := f.uc.Verify(context.Background(), v.ID, "123456")
	require.NoError(t, err)
	assert.Equal(t, "id-token", result.Session.IDToken)
	assert.Nil(t, result.Profile.Subscription)

	stored, _ := f.verifications.GetByID(context.Background(), v.ID)
	assert.Equal(t, entity.StateSignedIn, stored.State)

	_, err = f.uc.Verify(context.Background(), v.ID, "123456")
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestVerifyExpiredRecord(t *testing.T) {
	f := newAuthFixture(buyerProfile("uid-1"))
	v, err := f.uc.SendLoginCode(context.Background(), "34123456", ChallengeInput{})
	require.NoError(t, err)

	f.uc.now = func() time.Time { return fixedNow.Add(16 * time.Minute) }
	_, err = f.uc.Verify(context.Background(), v.ID, "123456")

	assert.True(t, errors.Is(err, errors.CodeVerificationExpired))
}

func TestMeWithoutProfile(t *testing.T) {
	f := newAuthFixture()

	_, err := f.uc.Me(context.Background(), "ghost")

	assert.True(t, errors.Is(err, errors.CodeProfileMissing))
}
