package entity

import (
	"math"
	"time"
)

type VendorStatus string

const (
	VendorPending  VendorStatus = "pending"
	VendorApproved VendorStatus = "approved"
	VendorRejected VendorStatus = "rejected"
)

type VendorApplication struct {
	BusinessName string       `json:"business_name" firestore:"businessName"`
	Address      string       `json:"address" firestore:"address"`
	Phone        string       `json:"phone" firestore:"phone"`
	Country      string       `json:"country" firestore:"country"`
	Department   string       `json:"department,omitempty" firestore:"department"`
	City         string       `json:"city" firestore:"city"`
	State        string       `json:"state,omitempty" firestore:"state"`
	ZipCode      string       `json:"zip_code,omitempty" firestore:"zipCode"`
	LogoURL      string       `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	Status       VendorStatus `json:"status" firestore:"status"`

	TrialStart             *time.Time `json:"trial_start,omitempty" firestore:"trial_start,omitempty"`
	TrialExpiration        *time.Time `json:"trial_expiration,omitempty" firestore:"trial_expiration,omitempty"`
	SubscriptionActive     bool       `json:"subscription_active" firestore:"subscription_active"`
	SubscriptionExpiration *time.Time `json:"subscription_expiration,omitempty" firestore:"subscription_expiration,omitempty"`
	PaymentVerified        bool       `json:"payment_verified" firestore:"payment_verified"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// UserProfile is keyed by the auth uid.
type UserProfile struct {
	ID            string             `json:"id" firestore:"uid"`
	Email         string             `json:"email,omitempty" firestore:"email"`
	Name          string             `json:"name" firestore:"name"`
	Phone         string             `json:"phone" firestore:"phone"`
	Country       string             `json:"country" firestore:"country"`
	Department    string             `json:"department,omitempty" firestore:"department,omitempty"`
	City          string             `json:"city" firestore:"city"`
	State         string             `json:"state,omitempty" firestore:"state,omitempty"`
	IsVendor      bool               `json:"is_vendor" firestore:"isVendor"`
	PhoneVerified bool               `json:"phone_verified" firestore:"phoneVerified"`
	Vendor        *VendorApplication `json:"vendor_application,omitempty" firestore:"vendorApplication,omitempty"`
	CreatedAt     time.Time          `json:"created_at" firestore:"createdAt"`
}

// NewVendorApplication opens an approved application with a free trial.
func NewVendorApplication(businessName, address, phone string, addr Address, now time.Time, trial time.Duration) *VendorApplication {
	start := now
	expires := now.Add(trial)
	return &VendorApplication{
		BusinessName:           businessName,
		Address:                address,
		Phone:                  phone,
		Country:                addr.Country,
		Department:             addr.Department,
		City:                   addr.ResolvedCity(),
		State:                  addr.State,
		ZipCode:                addr.ZipCode,
		Status:                 VendorApproved,
		TrialStart:             &start,
		TrialExpiration:        &expires,
		SubscriptionActive:     true,
		SubscriptionExpiration: &expires,
		PaymentVerified:        false,
		CreatedAt:              now,
	}
}

// DisplayName falls back when the profile has no name.
func (u *UserProfile) DisplayName(fallback string) string {
	if u == nil || u.Name == "" {
		return fallback
	}
	return u.Name
}

// IsActiveVendor reports a vendor profile whose application is not rejected.
func (u *UserProfile) IsActiveVendor() bool {
	return u != nil && u.IsVendor && u.Vendor != nil && u.Vendor.Status != VendorRejected
}

type SubscriptionStatus struct {
	Active    bool       `json:"active"`
	IsTrial   bool       `json:"is_trial"`
	DaysLeft  int        `json:"days_left"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Verified  bool       `json:"verified"`
}

func (v *VendorApplication) Subscription(now time.Time) SubscriptionStatus {
	if v == nil {
		return SubscriptionStatus{}
	}
	st := SubscriptionStatus{
		ExpiresAt: v.SubscriptionExpiration,
		Verified:  v.Status == VendorApproved && v.PaymentVerified,
	}
	if v.SubscriptionExpiration != nil && v.SubscriptionActive && now.Before(*v.SubscriptionExpiration) {
		st.Active = true
		st.DaysLeft = int(math.Ceil(v.SubscriptionExpiration.Sub(now).Hours() / 24))
	}
	if !v.PaymentVerified && v.TrialExpiration != nil && now.Before(*v.TrialExpiration) {
		st.IsTrial = true
	}
	return st
}

// Expired reports a subscription still flagged active past its expiration.
func (v *VendorApplication) Expired(now time.Time) bool {
	return v != nil && v.SubscriptionActive && v.SubscriptionExpiration != nil && !now.Before(*v.SubscriptionExpiration)
}
