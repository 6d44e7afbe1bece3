package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"testing"
	"time"

	"github.com/ryanj77/ResturauntBackend/internal/mq"
	"github.com/ryanj77/ResturauntBackend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend delivers its scripted messages to the subscriber and then
// blocks until the context ends, like a real broker with a drained queue.
type fakeBackend struct {
	messages map[string][]mq.Message
}

func (f *fakeBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return "msg-1", nil
}

func (f *fakeBackend) Subscribe(ctx context.Context, channel string, handler mq.Handler) error {
	for _, msg := range f.messages[channel] {
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeBackend) Close() error {
	return nil
}

func TestWorker_ProcessesAccountEvents(t *testing.T) {
	registered, err := json.Marshal(services.AccountEvent{
		Username:   "alice",
		Email:      "a@example.com",
		Role:       "user",
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	backend := &fakeBackend{messages: map[string][]mq.Message{
		services.ChannelUserRegistered: {{ID: "1", Data: registered}},
		services.ChannelUserLoggedIn:   {{ID: "2", Data: []byte("{not json")}},
	}}

	var buf bytes.Buffer
	w := New(mq.New(backend), log.New(&buf, "", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = w.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	out := buf.String()
	assert.Contains(t, out, "channel="+services.ChannelUserRegistered)
	assert.Contains(t, out, "username=alice")
	assert.Contains(t, out, "dropping malformed event id=2")
}

func TestWorker_SubscribesAllAccountChannels(t *testing.T) {
	payload, err := json.Marshal(services.AccountEvent{Username: "bob", Role: "user", OccurredAt: time.Now().UTC()})
	require.NoError(t, err)

	messages := map[string][]mq.Message{}
	for _, channel := range accountChannels {
		messages[channel] = []mq.Message{{ID: channel, Data: payload}}
	}
	backend := &fakeBackend{messages: messages}

	var buf bytes.Buffer
	w := New(mq.New(backend), log.New(&buf, "", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = w.Run(ctx)

	out := buf.String()
	for _, channel := range accountChannels {
		assert.Contains(t, out, "channel="+channel)
	}
}
