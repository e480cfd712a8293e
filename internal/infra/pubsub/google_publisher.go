package pubsub

import (
	"context"
	"log/slog"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// cloudPublisher publishes to a Google Cloud Pub/Sub topic. Events of one user
// share an ordering key, so subscribers with ordering enabled see them in order.
type cloudPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher fails when the topic does not exist; the service
// never creates topics itself.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	topic := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "topic %s is not available", topic)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	logger.Info("Publishing account events to Google Pub/Sub", slog.String("topic", topic))

	return &cloudPublisher{client: client, publisher: publisher, logger: logger}, nil
}

// Publish blocks until the server acknowledges the message.
func (p *cloudPublisher) Publish(ctx context.Context, event *entity.AccountEvent) error {
	data, attributes, err := encodeEvent(event)
	if err != nil {
		return err
	}

	key := orderingKey(event)
	serverID, err := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        data,
		Attributes:  attributes,
		OrderingKey: key,
	}).Get(ctx)
	if err != nil {
		// A failed publish pauses its ordering key until resumed.
		if key != "" {
			p.publisher.ResumePublish(key)
		}

		return errors.Wrapf(err, "failed to publish %s event", event.Type)
	}

	p.logger.Debug("Event published", slog.String("type", string(event.Type)), slog.String("server_id", serverID))

	return nil
}

func (p *cloudPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
