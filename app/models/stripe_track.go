package models

import "time"

// StripeTrack carries the audit timestamps and the processor identifier shared
// by every record mirrored from Stripe.
type StripeTrack struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	StripeID  string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"stripe_id"`
}
