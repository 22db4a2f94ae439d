package recordsRepo

import (
	"aarogya/models"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRecordRepo keeps therapy records in memory for single-node mode
// and tests.
type MemoryRecordRepo struct {
	mu      sync.Mutex
	records map[string]models.TherapyRecord
}

func NewMemoryRecordRepo() *MemoryRecordRepo {
	return &MemoryRecordRepo{records: make(map[string]models.TherapyRecord)}
}

func (r *MemoryRecordRepo) Create(ctx context.Context, record models.TherapyRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	r.records[record.ID] = record
	return record.ID, nil
}

func (r *MemoryRecordRepo) GetByID(ctx context.Context, id string) (*models.TherapyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &record, nil
}

func (r *MemoryRecordRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.TherapyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.BookingID == bookingID {
			rec := record
			return &rec, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r *MemoryRecordRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.TherapyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TherapyRecord
	for _, record := range r.records {
		if record.CustomerID == customerID {
			out = append(out, record)
		}
	}
	return out, nil
}
