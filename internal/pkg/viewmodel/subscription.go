package viewmodel

import (
	"time"

	"github.com/csalom/stripe-api/app/models"
)

// PaymentMethod is the public view of a stored card. Only the last digits
// are ever exposed.
type PaymentMethod struct {
	ID         uint      `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	StripeID   string    `json:"stripe_id"`
	LastDigits string    `json:"last_digits"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
}

type Customer struct {
	ID            uint           `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	StripeID      string         `json:"stripe_id"`
	FullName      string         `json:"full_name"`
	Email         string         `json:"email"`
	InvoicePrefix string         `json:"invoice_prefix"`
	PaymentMethod *PaymentMethod `json:"payment_method"`
}

// Subscription is returned by the create endpoint. Amount is rendered with
// two decimals, e.g. "100.00".
type Subscription struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	StripeID  string    `json:"stripe_id"`
	PriceID   string    `json:"price_id"`
	Status    string    `json:"status"`
	Amount    string    `json:"amount"`
	Customer  *Customer `json:"customer"`
}

func NewPaymentMethod(pm *models.PaymentMethod) *PaymentMethod {
	if pm == nil {
		return nil
	}
	return &PaymentMethod{
		ID:         pm.ID,
		CreatedAt:  pm.CreatedAt,
		StripeID:   pm.StripeID,
		LastDigits: pm.LastDigits,
		Month:      pm.Month,
		Year:       pm.Year,
	}
}

func NewCustomer(c *models.Customer) *Customer {
	if c == nil {
		return nil
	}
	return &Customer{
		ID:            c.ID,
		CreatedAt:     c.CreatedAt,
		StripeID:      c.StripeID,
		FullName:      c.FullName,
		Email:         c.Email,
		InvoicePrefix: c.InvoicePrefix,
		PaymentMethod: NewPaymentMethod(c.PaymentMethod),
	}
}

func NewSubscription(s *models.Subscription) *Subscription {
	if s == nil {
		return nil
	}
	return &Subscription{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		StripeID:  s.StripeID,
		PriceID:   s.PriceID,
		Status:    string(s.Status),
		Amount:    s.Amount.StringFixed(2),
		Customer:  NewCustomer(s.Customer),
	}
}
