package models

import "github.com/shopspring/decimal"

// SubscriptionStatus mirrors the Stripe subscription status values.
type SubscriptionStatus string

const (
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
	SubscriptionStatusPaused            SubscriptionStatus = "paused"
)

var subscriptionStatuses = map[SubscriptionStatus]string{
	SubscriptionStatusIncomplete:        "Incomplete",
	SubscriptionStatusIncompleteExpired: "Incomplete expired",
	SubscriptionStatusTrialing:          "Trialing",
	SubscriptionStatusActive:            "Active",
	SubscriptionStatusPastDue:           "Past Due",
	SubscriptionStatusCanceled:          "Canceled",
	SubscriptionStatusUnpaid:            "Unpaid",
	SubscriptionStatusPaused:            "Paused",
}

// IsValid reports whether s is one of the known Stripe statuses.
func (s SubscriptionStatus) IsValid() bool {
	_, ok := subscriptionStatuses[s]
	return ok
}

// Label returns the human readable name of the status.
func (s SubscriptionStatus) Label() string {
	if label, ok := subscriptionStatuses[s]; ok {
		return label
	}
	return string(s)
}

// Subscription is the local mirror of a Stripe subscription. It is created as
// unpaid during provisioning; status and amount are then driven by webhooks.
type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`
	StripeTrack
	CustomerID uint               `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer,omitempty"`
	PriceID    string             `gorm:"type:varchar(100);not null;index" json:"price_id"`
	Status     SubscriptionStatus `gorm:"type:varchar(32);not null;default:'unpaid';index" json:"status"`
	Amount     decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"amount"`
}
