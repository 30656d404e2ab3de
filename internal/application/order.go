package application

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

const whatsAppBaseURL = "https://wa.me/"

// OrderLink builds a WhatsApp click-to-chat link with a prefilled message.
// Spaces are encoded as %20.
func OrderLink(phone, message string) string {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBaseURL + url.PathEscape(phone) + "?text=" + text
}

// CardOrderMessage is the message sent from a product card.
func CardOrderMessage(p model.Product) string {
	return fmt.Sprintf("Hello, I would like to order %s (ID: %d)", p.Name, p.ID)
}

// DetailOrderMessage is the message sent from the product detail page.
func DetailOrderMessage(p model.Product) string {
	return fmt.Sprintf("Halo, Saya tertarik dengan produk %s", p.Name)
}
