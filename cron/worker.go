package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ruma/config"
	"ruma/models"
	"ruma/services/gateway"
	"ruma/services/messaging"
	"ruma/services/render"
	"ruma/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingFinder reads the current state of a booking when its reminder fires.
type BookingFinder interface {
	FindBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
}

// InitReminderWorker runs the reminder worker in background and returns the
// server so the caller can shut it down. The Redis monitor stops with ctx.
func InitReminderWorker(ctx context.Context, messenger messaging.Messenger, bookings BookingFinder, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, HandleReminderTask(messenger, bookings, logger))

	go monitorRedisConnection(ctx, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("[ReminderWorker] failed to start worker", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[ReminderWorker] max retry attempts reached, reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
		}
	}()
	return srv
}

// HandleReminderTask pushes the reminder to the booking's LINE user. The
// booking is read again first: a cancelled booking sends nothing and an
// edited one is reminded with its current details.
func HandleReminderTask(messenger messaging.Messenger, bookings BookingFinder, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return asynq.SkipRetry
		}

		booking, err := bookings.FindBookingByID(ctx, p.BookingID)
		if errors.Is(err, gateway.ErrNotFound) {
			logger.Info("[ReminderHandler] booking gone, reminder dropped", zap.String("bookingId", p.BookingID))
			return nil
		}
		if err != nil {
			logger.Error("[ReminderHandler] booking lookup failed", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		current := tasks.PayloadFor(*booking)
		if current.UserID == "" {
			current.UserID = p.UserID
		}
		if current.UserID == "" {
			logger.Warn("[ReminderHandler] booking has no LINE user", zap.String("bookingId", p.BookingID))
			return nil
		}

		if err := messenger.Push(ctx, current.UserID, []render.Message{render.Reminder(current)}); err != nil {
			logger.Error("[ReminderHandler] push failed", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		logger.Info("[ReminderHandler] reminder sent", zap.String("bookingId", p.BookingID), zap.String("userId", current.UserID))
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("[ReminderWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
