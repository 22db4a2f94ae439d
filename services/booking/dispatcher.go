package booking

import (
	"context"
	"fmt"
	"time"

	recordsRepo "aarogya/database/repository/records"
	"aarogya/models"
	"aarogya/services/notification"
	"aarogya/services/tasks"
	"aarogya/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// sideEffectTimeout bounds each downstream action; they run detached from
// the request that triggered them.
const sideEffectTimeout = 10 * time.Second

// SideEffectDispatcher runs the best-effort follow-ups of a committed
// transaction: pre-care push, therapy-record seeding and the deferred
// reminder. Each effect is isolated in its own goroutine with panic
// recovery; a failing effect is logged and never touches the committed
// booking or its siblings.
type SideEffectDispatcher struct {
	Notification notification.NotificationService
	Records      recordsRepo.TherapyRecordRepository

	// Tasks enqueues deferred reminders; nil disables them.
	Tasks *asynq.Client
}

// BookingReserved fires the post-commit effects of a fresh reservation.
func (d *SideEffectDispatcher) BookingReserved(booking models.Booking, svc models.Service) {
	if svc.PreCareInstructions != "" {
		d.dispatch("precare push", func(ctx context.Context) error {
			return d.Notification.SendPush(ctx, booking.CustomerID,
				fmt.Sprintf("Preparing for %s", svc.Name),
				svc.PreCareInstructions,
				map[string]string{"bookingId": booking.ID},
			)
		})
	}

	d.dispatch("therapy record", func(ctx context.Context) error {
		return d.seedTherapyRecord(ctx, booking)
	})

	d.dispatch("precare reminder", func(ctx context.Context) error {
		return d.enqueueReminder(booking, svc)
	})
}

// BookingRescheduled tells the patient their course moved.
func (d *SideEffectDispatcher) BookingRescheduled(booking models.Booking) {
	d.dispatch("reschedule push", func(ctx context.Context) error {
		return d.Notification.SendPush(ctx, booking.CustomerID,
			"Booking rescheduled",
			fmt.Sprintf("Your %s course now starts %s at %s.", booking.ServiceName, booking.StartDate, booking.Time),
			map[string]string{"bookingId": booking.ID},
		)
	})
}

// BookingCancelled confirms the cancellation to the patient.
func (d *SideEffectDispatcher) BookingCancelled(booking models.Booking) {
	d.dispatch("cancel push", func(ctx context.Context) error {
		return d.Notification.SendPush(ctx, booking.CustomerID,
			"Booking cancelled",
			fmt.Sprintf("Your %s booking starting %s was cancelled.", booking.ServiceName, booking.StartDate),
			map[string]string{"bookingId": booking.ID},
		)
	})
}

// dispatch runs one effect detached, with recovery and logging. Effects
// must never propagate failure back into the booking path.
func (d *SideEffectDispatcher) dispatch(name string, fn func(ctx context.Context) error) {
	go func() {
		logger := utils.GetLogger()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("side effect panicked", zap.String("effect", name), zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("side effect failed", zap.String("effect", name), zap.Error(err))
		}
	}()
}

// seedTherapyRecord creates the progress-tracking record with one planned
// timeline entry per reserved day.
func (d *SideEffectDispatcher) seedTherapyRecord(ctx context.Context, booking models.Booking) error {
	if d.Records == nil {
		return nil
	}
	dates, err := booking.Dates()
	if err != nil {
		return err
	}
	timeline := make([]models.TimelineEntry, 0, len(dates))
	for i, date := range dates {
		timeline = append(timeline, models.TimelineEntry{
			Day:    i + 1,
			Date:   date,
			Status: "planned",
		})
	}
	_, err = d.Records.Create(ctx, models.TherapyRecord{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		ServiceID:  booking.ServiceID,
		ProviderID: booking.ProviderID,
		Timeline:   timeline,
	})
	return err
}

// enqueueReminder schedules a push for 18:00 the evening before the course
// starts. Courses starting too soon for that simply get no reminder.
func (d *SideEffectDispatcher) enqueueReminder(booking models.Booking, svc models.Service) error {
	if d.Tasks == nil {
		return nil
	}
	start, err := time.ParseInLocation(models.DateLayout, booking.StartDate, time.Local)
	if err != nil {
		return err
	}
	fireAt := time.Date(start.Year(), start.Month(), start.Day(), 18, 0, 0, 0, start.Location()).AddDate(0, 0, -1)
	if !fireAt.After(time.Now()) {
		return nil
	}

	body := fmt.Sprintf("Your %s course starts tomorrow at %s.", svc.Name, booking.Time)
	if svc.PreCareInstructions != "" {
		body += " " + svc.PreCareInstructions
	}
	task, opts, err := tasks.NewPreCareReminderTask(models.ReminderPayload{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		Title:      fmt.Sprintf("%s starts tomorrow", svc.Name),
		Body:       body,
		FireDate:   fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := d.Tasks.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue precare reminder: %w", err)
	}
	return nil
}
