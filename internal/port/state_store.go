package port

import (
	"context"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

// StateStore persists each entity collection independently, one textual
// record per entity. Backends differ only in medium; they all speak the
// same line codec. Load on an empty backend returns an empty slice, not
// an error, and records that fail to decode are skipped with a
// diagnostic rather than failing the whole load.
type StateStore interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	LoadEvents(ctx context.Context) ([]domain.Event, error)
	SaveEvents(ctx context.Context, events []domain.Event) error

	LoadAttendees(ctx context.Context) ([]domain.Attendee, error)
	SaveAttendees(ctx context.Context, attendees []domain.Attendee) error

	LoadInventory(ctx context.Context) ([]domain.InventoryItem, error)
	SaveInventory(ctx context.Context, items []domain.InventoryItem) error
}
