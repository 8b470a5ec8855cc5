package outbound

import (
	"context"
	"time"

	"github.com/smartdine/v2/internal/domain/menu"
)

// MenuSource supplies the raw per-hall dish sequences for a given day.
// Implementations are external collaborators (upstream dining API, data
// store); the core only reads from them.
type MenuSource interface {
	// FetchMenu returns the full, unfiltered dish list for one hall.
	FetchMenu(ctx context.Context, hallSlug string, day time.Time) ([]menu.Dish, error)

	// FetchHalls returns the hall records with their menu snapshots.
	FetchHalls(ctx context.Context) ([]*menu.Hall, error)
}
