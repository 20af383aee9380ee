package models

import (
	"errors"
	"strings"
)

// LastDigitsLength is the number of card digits kept locally. The full card
// number is never persisted.
const LastDigitsLength = 4

var ErrCardNumberTooShort = errors.New("card number must have at least 4 digits")

// PaymentMethod is the local mirror of a Stripe card payment method. Rows are
// created once during provisioning and never updated.
type PaymentMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`
	StripeTrack
	LastDigits string `gorm:"type:varchar(4);not null" json:"last_digits"`
	Month      int    `gorm:"not null" json:"month"`
	Year       int    `gorm:"not null" json:"year"`
}

// LastDigits returns the trailing digits of a card number that are safe to store.
func LastDigits(cardNumber string) (string, error) {
	n := strings.TrimSpace(cardNumber)
	if len(n) < LastDigitsLength {
		return "", ErrCardNumberTooShort
	}
	return n[len(n)-LastDigitsLength:], nil
}
