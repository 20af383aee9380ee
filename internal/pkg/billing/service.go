package billing

import (
	"errors"

	"github.com/csalom/stripe-api/app/repository"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
)

// ProvisioningMetadataKey tags every processor object created by one
// provisioning run with the same id.
const ProvisioningMetadataKey = "provisioning_id"

var ErrUnknownStatus = errors.New("unknown subscription status")

// Service runs subscription provisioning and webhook reconciliation against
// the local mirror.
type Service struct {
	repos  *repository.Factory
	client stripeclient.Client
}

// NewService creates a billing service from an injected repository factory
// and processor client.
func NewService(repos *repository.Factory, client stripeclient.Client) *Service {
	return &Service{repos: repos, client: client}
}
