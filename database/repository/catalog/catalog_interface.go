package catalogRepo

import (
	"aarogya/models"
	"context"
	"errors"
)

// ErrServiceNotFound is returned when no service matches the requested ID.
var ErrServiceNotFound = errors.New("service not found")

// CatalogRepository exposes the read-only therapy catalog: services with
// their booking rules, and the treatment rooms they can run in. The engine
// never writes through this interface.
type CatalogRepository interface {
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	GetRooms(ctx context.Context, activeOnly bool) ([]models.Room, error)
}
