package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+509 3712-3456", "Bonjou & mèsi")
	assert.Equal(t, "https://wa.me/50937123456?text=Bonjou%20%26%20m%C3%A8si", link)
	assert.Equal(t, "https://wa.me/50937123456", WhatsAppLink("50937123456", ""))
}

func TestCallLink(t *testing.T) {
	assert.Equal(t, "tel:+50937123456", CallLink("+509 3712 3456"))
}

func TestRequestContactMessage(t *testing.T) {
	assert.Contains(t, RequestContactMessage("Frijidè"), "*Frijidè*")
}
