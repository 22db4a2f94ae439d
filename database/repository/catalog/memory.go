package catalogRepo

import (
	"context"
	"sort"
	"sync"

	"aarogya/models"
)

// MemoryCatalogRepo serves a fixed catalog from memory. Single-node
// deployments seed it from config at startup; tests seed it directly.
type MemoryCatalogRepo struct {
	mu       sync.RWMutex
	services map[string]models.Service
	rooms    map[string]models.Room
}

// NewMemoryCatalogRepo constructs an empty in-memory catalog.
func NewMemoryCatalogRepo() *MemoryCatalogRepo {
	return &MemoryCatalogRepo{
		services: make(map[string]models.Service),
		rooms:    make(map[string]models.Room),
	}
}

// PutService adds or replaces a service in the catalog.
func (repo *MemoryCatalogRepo) PutService(svc models.Service) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.services[svc.ID] = svc
}

// PutRoom adds or replaces a room in the catalog.
func (repo *MemoryCatalogRepo) PutRoom(room models.Room) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.rooms[room.ID] = room
}

func (repo *MemoryCatalogRepo) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	svc, ok := repo.services[serviceID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &svc, nil
}

func (repo *MemoryCatalogRepo) GetRooms(ctx context.Context, activeOnly bool) ([]models.Room, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	rooms := make([]models.Room, 0, len(repo.rooms))
	for _, room := range repo.rooms {
		if activeOnly && !room.Active {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}
