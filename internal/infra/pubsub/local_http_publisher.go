package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription = "projects/local/subscriptions/account-events"
	pushTimeout       = 10 * time.Second
)

// PushEnvelope is the body a Pub/Sub push subscription delivers. Data is
// base64 encoded by encoding/json because it is a []byte.
type PushEnvelope struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

type PushMessage struct {
	Data        []byte            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	OrderingKey string            `json:"orderingKey,omitempty"`
	PublishTime time.Time         `json:"publishTime"`
}

// pushPublisher delivers each event straight to a push endpoint, for running
// consumers locally without a broker.
type pushPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &pushPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: pushTimeout},
		logger:   logger,
	}
}

func (p *pushPublisher) Publish(ctx context.Context, event *entity.AccountEvent) error {
	data, attributes, err := encodeEvent(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(PushEnvelope{
		Subscription: localSubscription,
		Message: PushMessage{
			Data:        data,
			Attributes:  attributes,
			MessageID:   uuid.NewString(),
			OrderingKey: orderingKey(event),
			PublishTime: time.Now().UTC(),
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to push %s event", event.Type)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))

		return errors.Errorf("push endpoint rejected %s event with status %d: %s", event.Type, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	p.logger.Debug("Event pushed", slog.String("endpoint", p.endpoint), slog.String("type", string(event.Type)))

	return nil
}

func (p *pushPublisher) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
