package repository

import (
	"github.com/csalom/stripe-api/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentMethodRepository implements the PaymentMethodRepository interface
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository instance
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(paymentMethod *models.PaymentMethod) error {
	return r.db.Omit(clause.Associations).Create(paymentMethod).Error
}

func (r *paymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	var paymentMethod models.PaymentMethod
	if err := r.db.First(&paymentMethod, id).Error; err != nil {
		return nil, err
	}
	return &paymentMethod, nil
}

func (r *paymentMethodRepository) GetByStripeID(stripeID string) (*models.PaymentMethod, error) {
	var paymentMethod models.PaymentMethod
	if err := r.db.Where("stripe_id = ?", stripeID).First(&paymentMethod).Error; err != nil {
		return nil, err
	}
	return &paymentMethod, nil
}

// Delete removes a payment method. It fails while a customer references it.
func (r *paymentMethodRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentMethod{}, id).Error
}
