package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvent() *entity.AccountEvent {
	userID := uuid.New()

	return &entity.AccountEvent{
		Type:       entity.EventUserRegistered,
		UserID:     &userID,
		Email:      "a@x.com",
		RequestID:  "req-1",
		OccurredAt: time.Now().UTC(),
	}
}

func TestNewPublisher_ProviderSelection(t *testing.T) {
	ctx := context.Background()
	logger := newDiscardLogger()

	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
	}{
		{name: "disabled", cfg: nil},
		{name: "empty provider", cfg: &config.PubSubConfig{}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: config.PubSubProviderLocal}, wantErr: "local endpoint"},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, TopicID: "t"}, wantErr: "project ID"},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, ProjectID: "p"}, wantErr: "topic ID"},
		{name: "rabbitmq without url", cfg: &config.PubSubConfig{Provider: config.PubSubProviderRabbitMQ}, wantErr: "amqp URL"},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := newPublisher(ctx, tt.cfg, logger)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, &noopPublisher{}, publisher)
			assert.NoError(t, publisher.Publish(ctx, newTestEvent()))
		})
	}
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	event := newTestEvent()

	var received PushEnvelope
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher, err := newPublisher(context.Background(), &config.PubSubConfig{
		Provider:      config.PubSubProviderLocal,
		LocalEndpoint: server.URL,
	}, newDiscardLogger())
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), event))
	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "user.registered", received.Message.Attributes["type"])
	assert.Equal(t, event.UserID.String(), received.Message.Attributes["user_id"])

	assert.Equal(t, event.UserID.String(), received.Message.OrderingKey)

	var decoded entity.AccountEvent
	require.NoError(t, json.Unmarshal(received.Message.Data, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, "a@x.com", decoded.Email)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down\n"))
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	assert.ErrorContains(t, publisher.Publish(context.Background(), newTestEvent()), "status 502: upstream down")
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg

	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true

	return nil
}

func TestRabbitMQPublisher_RoutesByEventType(t *testing.T) {
	ch := &fakeChannel{}
	publisher := &rabbitMQPublisher{channel: ch, exchange: defaultExchange, logger: newDiscardLogger()}
	event := newTestEvent()

	require.NoError(t, publisher.Publish(context.Background(), event))
	assert.Equal(t, defaultExchange, ch.exchange)
	assert.Equal(t, "user.registered", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "req-1", ch.msg.CorrelationId)
	assert.Equal(t, event.UserID.String(), ch.msg.Headers["user_id"])

	require.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}
