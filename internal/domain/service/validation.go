package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const (
	MaxProductImages = 4
	MinProductImages = 1
	MaxImageBytes    = 4 * 1024 * 1024
)

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var (
	fieldValidator   = validator.New()
	numericPrefix    = regexp.MustCompile(`^[+-]?(\d|\.\d)`)
	verificationCode = regexp.MustCompile(`^\d{6}$`)
)

// FieldErrors maps a field name to its first failure message.
type FieldErrors map[string]string

func (f FieldErrors) add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

func minLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// ValidateAddress dispatches on the address variant.
func ValidateAddress(a entity.Address) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(a.Country) == "" {
		errs.add("country", "country is required")
		return errs
	}
	switch a.Kind() {
	case entity.AddressDomestic:
		if a.Department == "" {
			errs.add("department", "department is required")
		} else if _, ok := entity.HaitiGeography[a.Department]; !ok {
			errs.add("department", "department is not known")
		}
		if a.City == "" {
			errs.add("city", "city is required")
		} else if errs["department"] == "" && !entity.CityInDepartment(a.Department, a.City) {
			errs.add("city", "city does not belong to the selected department")
		}
	case entity.AddressForeign:
		if strings.TrimSpace(a.State) == "" {
			errs.add("state", "state is required")
		}
		if strings.TrimSpace(a.DiasporaCity) == "" {
			errs.add("diaspora_city", "city is required")
		}
	}
	return errs
}

func ValidateSignup(f *entity.SignupForm) FieldErrors {
	errs := FieldErrors{}
	if f.UserType != "buyer" && f.UserType != "vendor" {
		errs.add("user_type", "user_type must be one of: buyer vendor")
	}
	if !minLen(f.Name, 3) {
		errs.add("name", "name must be at least 3 characters")
	}
	if f.Email != "" && fieldValidator.Var(f.Email, "email") != nil {
		errs.add("email", "email must be a valid email address")
	}
	if !minLen(f.Phone, 8) {
		errs.add("phone", "phone must be at least 8 characters")
	}
	for k, v := range ValidateAddress(f.Address) {
		errs.add(k, v)
	}
	if f.IsVendor() {
		if !minLen(f.BusinessName, 3) {
			errs.add("business_name", "business_name must be at least 3 characters")
		}
		if !minLen(f.BusinessAddress, 10) {
			errs.add("business_address", "business_address must be at least 10 characters")
		}
		if !minLen(f.BusinessPhone, 8) {
			errs.add("business_phone", "business_phone must be at least 8 characters")
		}
	}
	return errs
}

func ValidVerificationCode(code string) bool {
	return verificationCode.MatchString(code)
}

// ImageMeta is what validation needs to know about an uploaded image.
type ImageMeta struct {
	Filename    string
	Size        int64
	ContentType string
}

func ValidateImages(images []ImageMeta, min, max int) FieldErrors {
	errs := FieldErrors{}
	if len(images) < min {
		errs.add("images", "at least "+strconv.Itoa(min)+" image is required")
	}
	if len(images) > max {
		errs.add("images", "at most "+strconv.Itoa(max)+" images are allowed")
	}
	for _, img := range images {
		if img.Size > MaxImageBytes {
			errs.add("images", img.Filename+" exceeds 4MB")
		}
		if !AllowedImageTypes[img.ContentType] {
			errs.add("images", img.Filename+" must be a JPEG, PNG or WEBP image")
		}
	}
	return errs
}

type ProductDraft struct {
	Name        string
	Description string
	Price       string
	Category    string
	Quantity    string
	Images      []ImageMeta
}

// ValidateProductDraft checks every rule that can fail before a network write.
// The parsed quantity is returned when valid.
func ValidateProductDraft(d ProductDraft) (int, FieldErrors) {
	errs := FieldErrors{}
	if !minLen(d.Name, 3) {
		errs.add("name", "name must be at least 3 characters")
	}
	if !minLen(d.Description, 10) {
		errs.add("description", "description must be at least 10 characters")
	}
	if strings.TrimSpace(d.Price) == "" {
		errs.add("price", "price is required")
	}
	if !entity.IsCategory(d.Category) {
		errs.add("category", "category is not a known category")
	}
	qty, ok := ParseQuantity(d.Quantity)
	if !ok {
		errs.add("quantity", "quantity must be a non-negative integer")
	}
	for k, v := range ValidateImages(d.Images, MinProductImages, MaxProductImages) {
		errs.add(k, v)
	}
	return qty, errs
}

func ParseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ValidOfferPrice accepts free text with a leading decimal number, e.g.
// "1200 Gdes", ".5" or "+1200".
func ValidOfferPrice(price string) bool {
	return numericPrefix.MatchString(strings.TrimSpace(price))
}

type RequestDraft struct {
	Title             string
	Description       string
	RequesterWhatsapp string
	Image             *ImageMeta
}

func ValidateRequestDraft(d RequestDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs.add("title", "title is required")
	}
	if !minLen(d.Description, 10) {
		errs.add("description", "description must be at least 10 characters")
	}
	if len(utils.Digits(d.RequesterWhatsapp)) < 8 {
		errs.add("requester_whatsapp", "requester_whatsapp must have at least 8 digits")
	}
	if d.Image != nil {
		for k, v := range ValidateImages([]ImageMeta{*d.Image}, 1, 1) {
			errs.add(k, v)
		}
	}
	return errs
}

type StoreInfo struct {
	BusinessName string
	Phone        string
	Address      string
	Location     entity.Address
}

func ValidateStoreInfo(s StoreInfo) FieldErrors {
	errs := FieldErrors{}
	if !minLen(s.BusinessName, 3) {
		errs.add("business_name", "business_name must be at least 3 characters")
	}
	if !minLen(s.Phone, 8) {
		errs.add("phone", "phone must be at least 8 characters")
	}
	if !minLen(s.Address, 10) {
		errs.add("address", "address must be at least 10 characters")
	}
	for k, v := range ValidateAddress(s.Location) {
		errs.add(k, v)
	}
	return errs
}
