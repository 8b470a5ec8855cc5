// Package memory provides an in-memory menu source implementation,
// useful for development and as a seam for tests. Production menu data
// lives in an external store behind the same interface.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/smartdine/v2/internal/domain/menu"
	"github.com/smartdine/v2/internal/ports/outbound"
	"github.com/smartdine/v2/pkg/errors"
)

// MenuStore implements outbound.MenuSource over an in-memory snapshot.
// Reads hand out deep copies so callers can never corrupt the shared
// snapshot.
type MenuStore struct {
	mutex sync.RWMutex
	halls map[string]*menu.Hall
}

var _ outbound.MenuSource = (*MenuStore)(nil)

// NewMenuStore creates an empty menu store.
func NewMenuStore() *MenuStore {
	return &MenuStore{
		halls: make(map[string]*menu.Hall),
	}
}

// Seed replaces the stored snapshot with copies of the given halls.
func (s *MenuStore) Seed(halls []*menu.Hall) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.halls = make(map[string]*menu.Hall, len(halls))
	for _, hall := range halls {
		s.halls[hall.Slug] = hall.Clone()
	}
}

// FetchMenu returns one hall's full dish list, flattened across meal
// categories with each dish annotated with its category.
func (s *MenuStore) FetchMenu(_ context.Context, hallSlug string, day time.Time) ([]menu.Dish, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	hall, ok := s.halls[hallSlug]
	if !ok {
		return nil, errors.NewMenuNotFoundError(hallSlug, day.Format("2006-01-02"))
	}

	var dishes []menu.Dish
	for category, items := range hall.Meals {
		for _, d := range items {
			dish := d.Clone()
			if dish.Meal == "" {
				dish.Meal = category
			}
			dishes = append(dishes, dish)
		}
	}
	return dishes, nil
}

// FetchHalls returns copies of all stored halls, in the fixed slug order.
func (s *MenuStore) FetchHalls(_ context.Context) ([]*menu.Hall, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	halls := make([]*menu.Hall, 0, len(s.halls))
	for _, slug := range menu.HallSlugs {
		if hall, ok := s.halls[slug]; ok {
			halls = append(halls, hall.Clone())
		}
	}
	// Halls outside the fixed four are still returned, after them.
	for slug, hall := range s.halls {
		if !isKnownSlug(slug) {
			halls = append(halls, hall.Clone())
		}
	}
	return halls, nil
}

func isKnownSlug(slug string) bool {
	for _, s := range menu.HallSlugs {
		if s == slug {
			return true
		}
	}
	return false
}
