package service

import (
	"fmt"
	"net/url"
	"strings"

	"deyelegliz/pkg/utils"
)

// WhatsAppLink builds a wa.me deep link with a pre-filled message.
func WhatsAppLink(phone, message string) string {
	link := "https://wa.me/" + utils.Digits(phone)
	if message == "" {
		return link
	}
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func CallLink(phone string) string {
	return "tel:+" + utils.Digits(phone)
}

func RequestContactMessage(title string) string {
	return fmt.Sprintf("Bonjou, mwen ekri w konsènan demand ou te fè sou Deye Legliz pou: *%s*", title)
}

const ProposalContactMessage = "Bonjou, mwen enterese nan pwopozisyon ou te fè pou demand mwen an sou Deye Legliz."

func ProductContactMessage(name, productURL string) string {
	return fmt.Sprintf("Bonjou, mwen enterese nan pwodwi sa a: *%s*\n\nOu ka wè l isit la: %s", name, productURL)
}
