package entity

import "time"

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

type Offer struct {
	ID             string      `json:"id" firestore:"-"`
	ProductID      string      `json:"product_id" firestore:"productId"`
	ProductName    string      `json:"product_name" firestore:"productName"`
	ProductOwnerID string      `json:"product_owner_id" firestore:"productOwnerId"`
	BuyerID        string      `json:"buyer_id" firestore:"buyerId"`
	BuyerName      string      `json:"buyer_name" firestore:"buyerName"`
	OriginalPrice  string      `json:"original_price" firestore:"originalPrice"`
	OfferPrice     string      `json:"offer_price" firestore:"offerPrice"`
	Status         OfferStatus `json:"status" firestore:"status"`
	CreatedAt      time.Time   `json:"created_at" firestore:"createdAt"`
}

func (o *Offer) IsPending() bool {
	return o.Status == OfferPending
}

// OfferView carries the actions the owner may still take.
type OfferView struct {
	*Offer
	Actions []string `json:"actions"`
}

func NewOfferView(o *Offer) OfferView {
	actions := []string{}
	if o.IsPending() {
		actions = []string{"accept", "reject"}
	}
	return OfferView{Offer: o, Actions: actions}
}
