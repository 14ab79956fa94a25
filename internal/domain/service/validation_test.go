package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"deyelegliz/internal/domain/entity"
)

func validSignup() *entity.SignupForm {
	return &entity.SignupForm{
		UserType: "buyer",
		Name:     "Jean Pierre",
		Phone:    "37123456",
		Address:  entity.Address{Country: entity.CountryHaiti, Department: "Lwès", City: "Dèlma"},
	}
}

func TestValidateAddressDomestic(t *testing.T) {
	errs := ValidateAddress(entity.Address{Country: entity.CountryHaiti})
	assert.Contains(t, errs, "department")
	assert.Contains(t, errs, "city")

	errs = ValidateAddress(entity.Address{Country: entity.CountryHaiti, Department: "Sid", City: "Dèlma"})
	assert.Equal(t, "city does not belong to the selected department", errs["city"])

	assert.True(t, ValidateAddress(entity.Address{Country: entity.CountryHaiti, Department: "Sid", City: "Okay"}).Empty())
}

func TestValidateAddressForeign(t *testing.T) {
	errs := ValidateAddress(entity.Address{Country: "Etazini", City: "Miami"})
	assert.Contains(t, errs, "state")
	assert.Contains(t, errs, "diaspora_city")
	assert.NotContains(t, errs, "department")

	ok := ValidateAddress(entity.Address{Country: "Etazini", State: "Florid", DiasporaCity: "Miami"})
	assert.True(t, ok.Empty())
}

func TestValidateAddressCountryRequired(t *testing.T) {
	errs := ValidateAddress(entity.Address{})
	assert.Equal(t, FieldErrors{"country": "country is required"}, errs)
}

func TestValidateSignup(t *testing.T) {
	assert.True(t, ValidateSignup(validSignup()).Empty())

	f := validSignup()
	f.Name = "Jo"
	f.Email = "not-an-email"
	f.Phone = "1234"
	errs := ValidateSignup(f)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
}

func TestValidateSignupVendorFields(t *testing.T) {
	f := validSignup()
	f.UserType = "vendor"
	errs := ValidateSignup(f)
	assert.Contains(t, errs, "business_name")
	assert.Contains(t, errs, "business_address")
	assert.Contains(t, errs, "business_phone")

	f.BusinessName = "Boutik Lakay"
	f.BusinessAddress = "12 Ri Lamatinyè, Dèlma"
	f.BusinessPhone = "37123456"
	assert.True(t, ValidateSignup(f).Empty())
}

func image(name string) ImageMeta {
	return ImageMeta{Filename: name, Size: 1024, ContentType: "image/png"}
}

func validDraft() ProductDraft {
	return ProductDraft{
		Name:        "Telefòn Samsung",
		Description: "Telefòn nèf, byen bon kondisyon",
		Price:       "1500 Gdes",
		Category:    entity.CategoryPhones,
		Quantity:    "2",
		Images:      []ImageMeta{image("a.png")},
	}
}

func TestValidateProductDraft(t *testing.T) {
	qty, errs := ValidateProductDraft(validDraft())
	assert.True(t, errs.Empty())
	assert.Equal(t, 2, qty)
}

func TestValidateProductDraftFiveImagesRejected(t *testing.T) {
	d := validDraft()
	d.Images = []ImageMeta{image("1.png"), image("2.png"), image("3.png"), image("4.png"), image("5.png")}
	_, errs := ValidateProductDraft(d)
	assert.Equal(t, "at most 4 images are allowed", errs["images"])
}

func TestValidateProductDraftImageRules(t *testing.T) {
	d := validDraft()
	d.Images = nil
	_, errs := ValidateProductDraft(d)
	assert.Contains(t, errs, "images")

	d.Images = []ImageMeta{{Filename: "big.jpg", Size: MaxImageBytes + 1, ContentType: "image/jpeg"}}
	_, errs = ValidateProductDraft(d)
	assert.True(t, strings.Contains(errs["images"], "4MB"))

	d.Images = []ImageMeta{{Filename: "anim.gif", Size: 10, ContentType: "image/gif"}}
	_, errs = ValidateProductDraft(d)
	assert.Contains(t, errs, "images")
}

func TestValidateProductDraftFields(t *testing.T) {
	d := ProductDraft{Name: "ab", Description: "short", Price: "  ", Category: "Bato", Quantity: "-1", Images: []ImageMeta{image("a.png")}}
	_, errs := ValidateProductDraft(d)
	for _, f := range []string{"name", "description", "price", "category", "quantity"} {
		assert.Contains(t, errs, f)
	}
}

func TestParseQuantity(t *testing.T) {
	n, ok := ParseQuantity("0")
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	_, ok = ParseQuantity("1.5")
	assert.False(t, ok)
	_, ok = ParseQuantity("")
	assert.False(t, ok)
}

func TestValidOfferPrice(t *testing.T) {
	assert.True(t, ValidOfferPrice("1200 Gdes"))
	assert.True(t, ValidOfferPrice(" 50"))
	assert.True(t, ValidOfferPrice(".5"))
	assert.True(t, ValidOfferPrice("+1200"))
	assert.True(t, ValidOfferPrice("-5"))
	assert.False(t, ValidOfferPrice("Gdes 1200"))
	assert.False(t, ValidOfferPrice("."))
	assert.False(t, ValidOfferPrice("+"))
	assert.False(t, ValidOfferPrice(""))
}

func TestValidateRequestDraft(t *testing.T) {
	errs := ValidateRequestDraft(RequestDraft{Title: "", Description: "kout", RequesterWhatsapp: "+509 37"})
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "requester_whatsapp")

	ok := ValidateRequestDraft(RequestDraft{Title: "Mwen bezwen yon frijidè", Description: "Frijidè 2 pòt an bon eta", RequesterWhatsapp: "+509 3712-3456"})
	assert.True(t, ok.Empty())
}

func TestValidateStoreInfo(t *testing.T) {
	errs := ValidateStoreInfo(StoreInfo{BusinessName: "Boutik", Phone: "37123456", Address: "12 Ri Lamatinyè", Location: entity.Address{Country: "Kanada"}})
	assert.Contains(t, errs, "state")
	assert.NotContains(t, errs, "business_name")
}

func TestValidVerificationCode(t *testing.T) {
	assert.True(t, ValidVerificationCode("123456"))
	assert.False(t, ValidVerificationCode("12345"))
	assert.False(t, ValidVerificationCode("12345a"))
}
