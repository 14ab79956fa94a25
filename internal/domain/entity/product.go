package entity

import (
	"time"
)

type Product struct {
	ID            string    `json:"id" firestore:"-"`
	UserID        string    `json:"user_id" firestore:"userId"`
	VendorName    string    `json:"vendor_name" firestore:"vendorName"`
	VendorCountry string    `json:"vendor_country" firestore:"vendorCountry"`
	VendorCity    string    `json:"vendor_city" firestore:"vendorCity"`
	Name          string    `json:"name" firestore:"name"`
	Description   string    `json:"description" firestore:"description"`
	Price         string    `json:"price" firestore:"price"`
	Category      string    `json:"category" firestore:"category"`
	Quantity      int       `json:"quantity" firestore:"quantity"`
	ImageURLs     []string  `json:"image_urls" firestore:"imageUrls"`
	IsAvailable   bool      `json:"is_available" firestore:"isAvailable"`
	Views         int       `json:"views" firestore:"views"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

// ProductDetail enriches a product with its vendor's public info.
type ProductDetail struct {
	*Product
	VendorLogoURL  string `json:"vendor_logo_url,omitempty"`
	VendorPhone    string `json:"vendor_phone,omitempty"`
	VendorVerified bool   `json:"vendor_verified"`
	WhatsAppLink   string `json:"whatsapp_link"`
}

type MerchantStats struct {
	TotalProducts  int `json:"total_products"`
	ActiveProducts int `json:"active_products"`
	TotalViews     int `json:"total_views"`
	PendingOffers  int `json:"pending_offers"`
}
