package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
)

const maxPageSize = 100

// publishEvent sends an event for a change that is already committed.
// A failed publish is logged and never undoes the change.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *entity.AccountEvent) {
	if publisher == nil {
		return
	}

	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	event.OccurredAt = time.Now().UTC()

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
	}
}

// listOptions validates paging input; zero limit means the maximum page size.
func listOptions(limit, offset int) (repository.ListOptions, error) {
	if limit < 0 || offset < 0 {
		return repository.ListOptions{}, domainerrors.Validation("limit and offset must not be negative")
	}
	if limit == 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	return repository.ListOptions{Limit: limit, Offset: offset}, nil
}

func mapUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.WithStack(domainerrors.ErrUserNotFound)
	case errors.Is(err, repository.ErrRoleNotFound):
		return errors.WithStack(domainerrors.ErrRoleNotFound)
	case errors.As(err, new(domainerrors.AppError)):
		return err
	default:
		return domainerrors.NewDatabaseExecuteError(err, "user repository")
	}
}

func mapRoleError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRoleNotFound):
		return errors.WithStack(domainerrors.ErrRoleNotFound)
	case errors.As(err, new(domainerrors.AppError)):
		return err
	default:
		return domainerrors.NewDatabaseExecuteError(err, "role repository")
	}
}
