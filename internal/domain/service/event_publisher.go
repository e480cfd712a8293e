package service

import (
	"context"

	"accounts/internal/domain/entity"
)

// EventPublisher defines the interface for publishing account events to a message broker
type EventPublisher interface {
	// Publish sends an event. Callers publish only after the change has been committed.
	Publish(ctx context.Context, event *entity.AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
