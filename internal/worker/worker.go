// Package worker consumes the account events published by the auth service
// and records them as an activity log.
package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ryanj77/ResturauntBackend/internal/mq"
	"github.com/ryanj77/ResturauntBackend/internal/services"
)

var accountChannels = []string{
	services.ChannelUserRegistered,
	services.ChannelUserLoggedIn,
}

// Worker subscribes to the account-event channels and logs each event.
type Worker struct {
	broker *mq.MQ
	logger *log.Logger
}

// New constructs a Worker consuming from the provided broker.
func New(broker *mq.MQ, logger *log.Logger) *Worker {
	return &Worker{
		broker: broker,
		logger: logger,
	}
}

// Run consumes from every account-event channel until the context is
// cancelled or a subscription fails. The first failure tears down the
// remaining subscriptions.
func (w *Worker) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(accountChannels))
	for _, channel := range accountChannels {
		go func(channel string) {
			errCh <- w.broker.Subscribe(ctx, channel, w.handleMessage(channel))
		}(channel)
	}
	return <-errCh
}

func (w *Worker) handleMessage(channel string) mq.Handler {
	return func(ctx context.Context, msg mq.Message) error {
		var event services.AccountEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			// A malformed payload will never parse; drop it instead of
			// requeueing forever.
			w.logger.Printf("dropping malformed event id=%s channel=%s: %v", msg.ID, channel, err)
			return nil
		}

		w.logger.Printf(
			"account event channel=%s username=%s role=%s occurred_at=%s",
			channel,
			event.Username,
			event.Role,
			event.OccurredAt.Format(time.RFC3339),
		)
		return nil
	}
}
