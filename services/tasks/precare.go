package tasks

import (
	"aarogya/models"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypePreCareReminder = "precare:reminder"

// NewPreCareReminderTask builds the deferred reminder task for a booking,
// scheduled to fire at the given time.
func NewPreCareReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePreCareReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
