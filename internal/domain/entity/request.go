package entity

import "time"

// Request is a buyer's public ask for an item.
type Request struct {
	ID                string    `json:"id" firestore:"-"`
	Title             string    `json:"title" firestore:"title"`
	Description       string    `json:"description" firestore:"description"`
	ImageURL          string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	RequesterWhatsapp string    `json:"requester_whatsapp" firestore:"requesterWhatsapp"`
	UserID            string    `json:"user_id" firestore:"userId"`
	UserName          string    `json:"user_name" firestore:"userName"`
	City              string    `json:"city" firestore:"city"`
	Country           string    `json:"country" firestore:"country"`
	Views             int       `json:"views" firestore:"views"`
	ProposalCount     int       `json:"proposal_count" firestore:"proposalCount"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
}

type Proposal struct {
	ID            string    `json:"id" firestore:"-"`
	RequestID     string    `json:"request_id" firestore:"requestId"`
	RequesterID   string    `json:"requester_id" firestore:"requesterId"`
	VendorID      string    `json:"vendor_id" firestore:"vendorId"`
	VendorName    string    `json:"vendor_name" firestore:"vendorName"`
	VendorPhone   string    `json:"vendor_phone" firestore:"vendorPhone"`
	ProposedPrice string    `json:"proposed_price" firestore:"proposedPrice"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

// ProposalView is a proposal as shown to the requester, with contact links.
type ProposalView struct {
	*Proposal
	CallLink     string `json:"call_link"`
	WhatsAppLink string `json:"whatsapp_link"`
}
