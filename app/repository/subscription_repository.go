package repository

import (
	"github.com/csalom/stripe-api/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Omit(clause.Associations).Create(subscription).Error
}

// GetByID retrieves a subscription with its customer and payment method
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.Preload("Customer.PaymentMethod").First(&subscription, id).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

// FindByStripeIDsForUpdate looks a subscription up by its Stripe id and the
// Stripe id of its customer, both of which have to match, and locks the row
// until the surrounding transaction ends.
func (r *subscriptionRepository) FindByStripeIDsForUpdate(stripeID, customerStripeID string) (*models.Subscription, error) {
	customerIDs := r.db.Model(&models.Customer{}).Select("id").Where("stripe_id = ?", customerStripeID)

	var subscription models.Subscription
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("stripe_id = ? AND customer_id IN (?)", stripeID, customerIDs).
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// Save writes all columns of the subscription, leaving associations untouched.
func (r *subscriptionRepository) Save(subscription *models.Subscription) error {
	return r.db.Omit(clause.Associations).Save(subscription).Error
}

func (r *subscriptionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Count(&count).Error
	return count, err
}
