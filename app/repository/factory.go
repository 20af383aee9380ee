package repository

import (
	"context"

	"gorm.io/gorm"
)

// Factory hands out repositories bound to a request context or to a
// transaction.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// WithContext returns repositories whose queries carry ctx.
func (f *Factory) WithContext(ctx context.Context) *Repositories {
	return NewRepositories(f.db.WithContext(ctx))
}

// Transaction runs fn with repositories bound to a single transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (f *Factory) Transaction(ctx context.Context, fn func(repos *Repositories) error) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
