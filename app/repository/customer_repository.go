package repository

import (
	"strings"

	"github.com/csalom/stripe-api/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Omit(clause.Associations).Create(customer).Error
}

// GetByID retrieves a customer together with its payment method
func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("PaymentMethod").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByStripeID(stripeID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("PaymentMethod").Where("stripe_id = ?", stripeID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// EmailExists reports whether a customer already uses the given email.
func (r *customerRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("email = ?", strings.TrimSpace(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a customer. It fails while a subscription references it.
func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}
