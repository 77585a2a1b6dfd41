package port

import (
	"context"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// CapabilityProvider resolves the capabilities of the current caller.
type CapabilityProvider interface {
	CurrentCapabilities(ctx context.Context) (entity.CapabilitySet, error)
}
