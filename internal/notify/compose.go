// Package notify composes vendor order emails and hands them off to an
// external transport. The core is responsible for the quantities and the
// message text only, never for delivery confirmation.
package notify

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/repleniq/backend-go/internal/domain"
)

// OrderItem pairs a product with the quantity to order from the vendor.
type OrderItem struct {
	Product  domain.Product `json:"product"`
	Quantity float64        `json:"quantity"`
}

// OrderRequest is the order-placement boundary handed to the notifier.
type OrderRequest struct {
	VendorName  string      `json:"vendor_name"`
	VendorEmail string      `json:"vendor_email"`
	Items       []OrderItem `json:"items"`
}

// Email is a composed plain-text message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// ComposeOrderEmail renders the order request into a plain-text email listing
// each product with its SKU, GS1 code, quantity, and a marketplace link when
// an ASIN is known.
func ComposeOrderEmail(req OrderRequest) Email {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", req.VendorName)

	if len(req.Items) == 0 {
		b.WriteString("We would like to place an order. Please provide a quote for the following items.\n\n")
		b.WriteString("Regards,\nInventory Management Team")
		return Email{
			To:      req.VendorEmail,
			Subject: "Order Request: " + req.VendorName,
			Body:    b.String(),
		}
	}

	b.WriteString("We would like to place an order for the following items:\n")

	for _, item := range req.Items {
		fmt.Fprintf(&b, "\nProduct: %s\n", item.Product.Name)
		fmt.Fprintf(&b, "SKU: %s\n", orNA(item.Product.SKU))
		fmt.Fprintf(&b, "GS1 Code: %s\n", orNA(item.Product.GS1Code))
		fmt.Fprintf(&b, "Quantity: %.0f units\n", item.Quantity)
		if link := marketplaceLink(item.Product.ASINs); link != "" {
			fmt.Fprintf(&b, "Marketplace Link: %s\n", link)
		}
	}

	b.WriteString("\nPlease confirm the availability and estimated delivery time for these items.\n\n")
	b.WriteString("Thank you,\nInventory Management Team")

	return Email{
		To:      req.VendorEmail,
		Subject: "Order Request: " + req.VendorName,
		Body:    b.String(),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// marketplaceLink derives a product page URL from the first ASIN in a
// comma-separated list.
func marketplaceLink(asins string) string {
	if asins == "" {
		return ""
	}
	first := strings.TrimSpace(strings.SplitN(asins, ",", 2)[0])
	if first == "" {
		return ""
	}
	return "https://amazon.in/dp/" + first
}

// encodeRaw packs the email into the RFC 822 raw form the Gmail API expects:
// base64url without padding.
func encodeRaw(email Email) string {
	message := strings.Join([]string{
		"From: me",
		"To: " + email.To,
		"Subject: " + email.Subject,
		"",
		email.Body,
	}, "\r\n")

	return base64.RawURLEncoding.EncodeToString([]byte(message))
}
