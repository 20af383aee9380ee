package models

// Customer is the local mirror of a Stripe customer. Email is unique across
// all customers and the referenced payment method cannot be deleted while the
// customer exists.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`
	StripeTrack
	FullName        string         `gorm:"type:varchar(100);not null" json:"full_name"`
	Email           string         `gorm:"type:varchar(191);not null;uniqueIndex" json:"email"`
	InvoicePrefix   string         `gorm:"type:varchar(100);not null;default:''" json:"invoice_prefix"`
	PaymentMethodID uint           `gorm:"not null;index" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"payment_method,omitempty"`
}
