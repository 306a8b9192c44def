package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ruma/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "reminder:booking"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}

	return task, opts, nil
}

// PayloadFor is the reminder content for a stored booking.
func PayloadFor(b models.Booking) models.ReminderPayload {
	return models.ReminderPayload{
		UserID:    b.UserID,
		BookingID: b.BookingID,
		Room:      b.Room,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Topic:     b.MeetingTopic,
	}
}

// StartsAt is the wall-clock start of a booking in loc.
func StartsAt(b models.Booking, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.StartTime, loc)
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqScheduler queues a push reminder Lead before each booking starts.
type AsynqScheduler struct {
	client   enqueuer
	location *time.Location
	lead     time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewAsynqScheduler(client *asynq.Client, loc *time.Location, lead time.Duration, logger *zap.Logger) *AsynqScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqScheduler{client: client, location: loc, lead: lead, now: time.Now, logger: logger}
}

// ScheduleReminder does nothing when the reminder time has already passed.
func (s *AsynqScheduler) ScheduleReminder(ctx context.Context, b models.Booking) error {
	start, err := StartsAt(b, s.location)
	if err != nil {
		return fmt.Errorf("reminder time for %s: %w", b.BookingID, err)
	}
	fireAt := start.Add(-s.lead)
	if !fireAt.After(s.now()) {
		s.logger.Debug("reminder skipped, already due", zap.String("bookingId", b.BookingID))
		return nil
	}

	task, opts, err := NewReminderTask(PayloadFor(b), fireAt)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	s.logger.Info("reminder scheduled", zap.String("bookingId", b.BookingID), zap.String("taskId", info.ID), zap.Time("fireAt", fireAt))
	return nil
}
