package repository

import (
	"github.com/csalom/stripe-api/app/models"
	"gorm.io/gorm"
)

// PaymentMethodRepository defines the interface for payment method database operations
type PaymentMethodRepository interface {
	Create(paymentMethod *models.PaymentMethod) error
	GetByID(id uint) (*models.PaymentMethod, error)
	GetByStripeID(stripeID string) (*models.PaymentMethod, error)
	Delete(id uint) error
}

// CustomerRepository defines the interface for customer database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByStripeID(stripeID string) (*models.Customer, error)
	EmailExists(email string) (bool, error)
	Delete(id uint) error
}

// SubscriptionRepository defines the interface for subscription database operations
type SubscriptionRepository interface {
	Create(subscription *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	FindByStripeIDsForUpdate(stripeID, customerStripeID string) (*models.Subscription, error)
	Save(subscription *models.Subscription) error
	Count() (int64, error)
}

// WebhookEventRepository defines the interface for the webhook delivery log
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	GetByProviderEventID(provider, providerEventID string) (*models.WebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	PaymentMethod PaymentMethodRepository
	Customer      CustomerRepository
	Subscription  SubscriptionRepository
	WebhookEvent  WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		PaymentMethod: NewPaymentMethodRepository(db),
		Customer:      NewCustomerRepository(db),
		Subscription:  NewSubscriptionRepository(db),
		WebhookEvent:  NewWebhookEventRepository(db),
	}
}
