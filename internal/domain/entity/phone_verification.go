package entity

import "time"

type VerificationPurpose string

const (
	PurposeSignup VerificationPurpose = "signup"
	PurposeLogin  VerificationPurpose = "login"
)

type VerificationState string

const (
	StateCodeSent VerificationState = "code_sent"
	StateVerified VerificationState = "verified"
	StateSignedIn VerificationState = "signed_in"
)

// SignupForm is the pending profile held while the code is outstanding.
type SignupForm struct {
	UserType        string  `json:"user_type" firestore:"userType"`
	Name            string  `json:"name" firestore:"name"`
	Email           string  `json:"email,omitempty" firestore:"email"`
	Phone           string  `json:"phone" firestore:"phone"`
	Address         Address `json:"address" firestore:"address"`
	BusinessName    string  `json:"business_name,omitempty" firestore:"businessName"`
	BusinessAddress string  `json:"business_address,omitempty" firestore:"businessAddress"`
	BusinessPhone   string  `json:"business_phone,omitempty" firestore:"businessPhone"`
}

func (f *SignupForm) IsVendor() bool {
	return f != nil && f.UserType == "vendor"
}

type PhoneVerification struct {
	ID          string              `json:"id" firestore:"-"`
	Purpose     VerificationPurpose `json:"purpose" firestore:"purpose"`
	PhoneNumber string              `json:"phone_number" firestore:"phoneNumber"`
	SessionInfo string              `json:"-" firestore:"sessionInfo"`
	Signup      *SignupForm         `json:"signup,omitempty" firestore:"signup,omitempty"`
	State       VerificationState   `json:"state" firestore:"state"`
	Attempts    int                 `json:"attempts" firestore:"attempts"`
	UID         string              `json:"uid,omitempty" firestore:"uid,omitempty"`
	CreatedAt   time.Time           `json:"created_at" firestore:"createdAt"`
	ExpiresAt   time.Time           `json:"expires_at" firestore:"expiresAt"`
}

func (v *PhoneVerification) IsExpired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
