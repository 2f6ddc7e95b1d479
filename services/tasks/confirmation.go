package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmed = "booking:confirmed"

func NewConfirmationTask(payload models.ConfirmationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingConfirmed, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
		// One task per booking even if the listener fires twice.
		asynq.TaskID("confirmation:" + payload.Booking.ID),
	}
	return task, opts, nil
}

func ParseConfirmationTask(task *asynq.Task) (models.ConfirmationPayload, error) {
	var p models.ConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeBookingConfirmed, err)
	}
	return p, nil
}
