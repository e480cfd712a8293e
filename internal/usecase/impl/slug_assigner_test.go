package impl

import (
	"context"
	"testing"

	domainerrors "accounts/internal/domain/errors"
	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSlugAssigner_ExistingSlugIsKept(t *testing.T) {
	checker := mockRepo.NewMockRoleRepository(t)
	assigner := NewSlugAssigner(3, nil)

	slug, err := assigner.EnsureSlug(context.Background(), "My Team", "custom", checker)

	require.NoError(t, err)
	assert.Equal(t, "custom", slug)
	checker.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything)
}

func TestSlugAssigner_FirstFreeCandidateWins(t *testing.T) {
	ctx := context.Background()
	checker := mockRepo.NewMockRoleRepository(t)
	metrics := mockSvc.NewMockAccountMetrics(t)
	assigner := NewSlugAssigner(10, metrics)

	checker.EXPECT().SlugExists(ctx, "my-team").Return(true, nil).Once()
	checker.EXPECT().SlugExists(ctx, "my-team-1").Return(true, nil).Once()
	checker.EXPECT().SlugExists(ctx, "my-team-2").Return(false, nil).Once()
	metrics.EXPECT().ObserveSlugCollision().Times(2)

	slug, err := assigner.EnsureSlug(ctx, "My Team", "", checker)

	require.NoError(t, err)
	assert.Equal(t, "my-team-2", slug)
}

func TestSlugAssigner_Exhaustion(t *testing.T) {
	ctx := context.Background()
	checker := mockRepo.NewMockRoleRepository(t)
	metrics := mockSvc.NewMockAccountMetrics(t)
	assigner := NewSlugAssigner(3, metrics)

	checker.EXPECT().SlugExists(ctx, "ops").Return(true, nil).Once()
	checker.EXPECT().SlugExists(ctx, "ops-1").Return(true, nil).Once()
	checker.EXPECT().SlugExists(ctx, "ops-2").Return(true, nil).Once()
	metrics.EXPECT().ObserveSlugCollision().Times(3)

	_, err := assigner.EnsureSlug(ctx, "Ops", "", checker)

	assert.ErrorIs(t, err, domainerrors.ErrSlugUnavailable)
	assert.True(t, domainerrors.IsConflict(err))
}

func TestSlugAssigner_Errors(t *testing.T) {
	ctx := context.Background()
	checker := mockRepo.NewMockRoleRepository(t)
	assigner := NewSlugAssigner(3, nil)

	_, err := assigner.EnsureSlug(ctx, "日本語", "", checker)
	assert.True(t, domainerrors.IsValidation(err))

	checkErr := errors.New("connection refused")
	checker.EXPECT().SlugExists(ctx, "ops").Return(false, checkErr).Once()

	_, err = assigner.EnsureSlug(ctx, "Ops", "", checker)
	assert.ErrorIs(t, err, checkErr)
}
