package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName       = "deye_legliz"
	onboardingKey    = "onboarding_complete"
	tenYearsInSecond = 10 * 365 * 24 * 60 * 60
)

// OnboardingStore keeps the onboarding flag in a signed cookie. The flag is
// only ever set, never cleared.
type OnboardingStore struct {
	store sessions.Store
}

func NewOnboardingStore(secret string, secure bool) *OnboardingStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   tenYearsInSecond,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &OnboardingStore{store: store}
}

// Completed reports the flag. A missing or tampered cookie reads as false.
func (s *OnboardingStore) Completed(r *http.Request) bool {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return false
	}
	done, _ := sess.Values[onboardingKey].(bool)
	return done
}

func (s *OnboardingStore) MarkCompleted(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, cookieName)
	sess.Values[onboardingKey] = true
	return sess.Save(r, w)
}
