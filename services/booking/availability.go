package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	catalogRepo "aarogya/database/repository/catalog"
	"aarogya/models"
	"aarogya/utils"

	"go.uber.org/zap"
)

// ComputeAvailability produces the ordered list of bookable start times for
// a service on one date, with a room assigned to each by first-fit. It is
// read-only: the reservation transaction remains the sole source of truth
// for conflicts, so a reported slot can still be lost to a concurrent
// caller.
func (s *DefaultBookingService) ComputeAvailability(ctx context.Context, req AvailabilityRequest) ([]models.AvailableSlot, error) {
	if req.ServiceID == "" {
		return nil, newValidationError("serviceId is required")
	}
	date, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, newValidationError("invalid date %q, want YYYY-MM-DD", req.Date)
	}

	cacheKey := fmt.Sprintf("availability:%s:%s:%s", req.ServiceID, req.Date, req.PreferredProviderID)
	if cached, ok := s.cachedAvailability(ctx, cacheKey); ok {
		return cached, nil
	}

	svc, err := s.Catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, newNotFoundError("service %s not found", req.ServiceID)
		}
		return nil, err
	}
	if !svc.Active {
		return nil, newNotFoundError("service %s is not active", req.ServiceID)
	}

	now := s.now()
	slots := make([]models.AvailableSlot, 0)

	// Dates outside the advance-booking window have nothing to offer.
	if svc.Rules.MaxAdvanceBookingDays > 0 && date.After(now.AddDate(0, 0, svc.Rules.MaxAdvanceBookingDays)) {
		return slots, nil
	}

	rooms, err := s.compatibleRooms(ctx, svc.Name)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		// No compatible room is a valid empty result, not an error.
		return slots, nil
	}

	providerID := req.PreferredProviderID
	if providerID == "" {
		providerID = svc.DefaultProviderID
	}
	if !validResourceID(providerID) {
		return nil, newValidationError("no provider available for service %s", req.ServiceID)
	}

	cutoff := now
	if svc.Rules.MinAdvanceBookingHrs > 0 {
		cutoff = now.Add(time.Duration(svc.Rules.MinAdvanceBookingHrs) * time.Hour)
	}

	for _, t := range candidateTimes(svc, date) {
		start := slotStartTime(date, t)
		// The advance-notice cutoff is a hard filter; slots already in the
		// past fall out the same way.
		if !start.After(cutoff) {
			continue
		}

		locked, err := s.Repo.SlotLocked(ctx, models.MakeSlotKey(providerID, req.Date, t))
		if err != nil {
			return nil, err
		}
		if locked {
			continue
		}

		// First-fit over compatible rooms, which arrive sorted by ID: ties
		// break by list order so repeated calls assign the same room.
		for _, room := range rooms {
			locked, err := s.Repo.SlotLocked(ctx, models.MakeSlotKey(room.ID, req.Date, t))
			if err != nil {
				return nil, err
			}
			if !locked {
				slots = append(slots, models.AvailableSlot{Time: t, RoomID: room.ID})
				break
			}
		}
	}

	s.storeAvailability(ctx, cacheKey, slots)
	return slots, nil
}

// compatibleRooms returns the active rooms able to host the therapy,
// sorted by room ID (the catalog repository guarantees the order).
func (s *DefaultBookingService) compatibleRooms(ctx context.Context, therapy string) ([]models.Room, error) {
	rooms, err := s.Catalog.GetRooms(ctx, true)
	if err != nil {
		return nil, err
	}
	compatible := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Supports(therapy) {
			compatible = append(compatible, room)
		}
	}
	return compatible, nil
}

// candidateTimes filters the fixed daily enumeration down to the service's
// working window for the date's weekday. Services without configured hours
// are offered on the full enumeration; a configured service with no window
// for the weekday is closed that day.
func candidateTimes(svc *models.Service, date time.Time) []string {
	if len(svc.WorkingHours) == 0 {
		return models.DailySlotTimes
	}
	window, ok := svc.WorkingHours[strings.ToLower(date.Weekday().String())]
	if !ok {
		return nil
	}
	var times []string
	for _, t := range models.DailySlotTimes {
		// "HH:MM" compares correctly as a string.
		if t >= window.Start && t <= window.End {
			times = append(times, t)
		}
	}
	return times
}

// slotStartTime anchors an "HH:MM" start time on a calendar date.
func slotStartTime(date time.Time, hhmm string) time.Time {
	hour, _ := strconv.Atoi(hhmm[:2])
	minute, _ := strconv.Atoi(hhmm[3:])
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func (s *DefaultBookingService) cachedAvailability(ctx context.Context, key string) ([]models.AvailableSlot, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.AvailableSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultBookingService) storeAvailability(ctx context.Context, key string, slots []models.AvailableSlot) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, raw, ttl).Err(); err != nil {
		utils.GetLogger().Debug("availability cache write failed", zap.Error(err))
	}
}
