package cron

import (
	"context"
	"time"

	"github.com/YarKhan02/Workshop-sub000/config"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/invoice"
	"github.com/YarKhan02/Workshop-sub000/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InvoiceStore is where pre-rendered invoices go.
type InvoiceStore interface {
	Put(ctx context.Context, key string, pdf []byte) error
}

// QueueRedisOpt is the asynq connection shared by the enqueuing client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitConfirmationWorker runs the confirmation worker in the background and
// returns the server so the caller can shut it down.
func InitConfirmationWorker(store InvoiceStore, company models.Company, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmed, HandleConfirmationTask(store, company, logger))

	go func() {
		logger.Info("[ConfirmationWorker] Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warn("[ConfirmationWorker] Failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[ConfirmationWorker] Max retry attempts reached, confirmations will not be processed")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleConfirmationTask renders the booking's invoice ahead of the first download.
func HandleConfirmationTask(store InvoiceStore, company models.Company, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseConfirmationTask(task)
		if err != nil {
			logger.Error("[ConfirmationHandler] Invalid payload", zap.Error(err))
			// Retrying cannot fix a malformed payload.
			return asynq.SkipRetry
		}

		pdf, err := invoice.Generate(p.Booking, company)
		if err != nil {
			logger.Error("[ConfirmationHandler] Failed to render invoice",
				zap.String("bookingID", p.Booking.ID), zap.Error(err))
			return err
		}
		if err := store.Put(ctx, invoice.CacheKey(p.Booking), pdf); err != nil {
			logger.Warn("[ConfirmationHandler] Failed to cache invoice",
				zap.String("bookingID", p.Booking.ID), zap.Error(err))
			return err
		}

		logger.Info("[ConfirmationHandler] Invoice ready",
			zap.String("bookingID", p.Booking.ID), zap.String("userID", p.UserID))
		return nil
	}
}
