package monitor

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for monitor record persistence.
type Store interface {
	// Create creates a new monitor record.
	Create(ctx context.Context, m *Monitor) error

	// GetByID retrieves a monitor record by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Monitor, error)

	// List retrieves monitor records, newest first.
	List(ctx context.Context, limit, offset int) ([]*Monitor, int, error)

	// Update applies the given setters as a single partial update.
	Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) error

	// Delete deletes a monitor record by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateSetter returns the column-value pairs to apply in a partial UPDATE.
// Using a map avoids a read-modify-write: the caller never needs to fetch
// the full row before writing.
type UpdateSetter func() map[string]interface{}
