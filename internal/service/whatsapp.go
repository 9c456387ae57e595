package service

import (
	"net/url"
	"strings"
)

// NormalizePhone converts a locally formatted Indonesian phone number into
// international form. Whitespace, hyphens and a leading "+" are stripped; a
// leading "0" becomes the 62 country code. Anything else passes through
// untouched, malformed or not.
func NormalizePhone(raw string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	cleaned = strings.TrimPrefix(cleaned, "+")
	if strings.HasPrefix(cleaned, "0") {
		return "62" + cleaned[1:]
	}
	return cleaned
}

// WhatsAppLink builds a wa.me chat-open deep link for the number.
func WhatsAppLink(phone string) string {
	return "https://wa.me/" + NormalizePhone(phone)
}

// WhatsAppLinkWithText builds a chat-open link with a pre-filled message.
func WhatsAppLinkWithText(phone, text string) string {
	link := WhatsAppLink(phone)
	if text == "" {
		return link
	}
	return link + "?text=" + url.QueryEscape(text)
}
