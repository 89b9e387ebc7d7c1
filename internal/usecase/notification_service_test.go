package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

func newNotificationService() (*usecase.NotificationService, *MockNotificationRepository, *MockNotificationSink) {
	notifications := new(MockNotificationRepository)
	sink := new(MockNotificationSink)
	return usecase.NewNotificationService(notifications, sink, zap.NewNop()), notifications, sink
}

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("persists and publishes", func(t *testing.T) {
		service, notifications, sink := newNotificationService()

		notifications.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.RecipientID == recipientID && n.Type == model.NotificationTaskAssigned
		})).Return(nil)
		sink.On("Publish", ctx, "user:"+recipientID.String()+":notifications", mock.Anything).Return(nil)

		service.Notify(ctx, recipientID, model.NotificationTaskAssigned, "You were assigned", nil)

		notifications.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("swallows a failed publish", func(t *testing.T) {
		service, notifications, sink := newNotificationService()

		notifications.On("Create", ctx, mock.Anything).Return(nil)
		sink.On("Publish", ctx, mock.Anything, mock.Anything).Return(errors.New("broken pipe"))

		service.Notify(ctx, recipientID, model.NotificationTaskAssigned, "You were assigned", nil)

		notifications.AssertExpectations(t)
	})

	t.Run("skips publish when persisting fails", func(t *testing.T) {
		service, notifications, sink := newNotificationService()

		notifications.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		service.Notify(ctx, recipientID, model.NotificationTaskAssigned, "You were assigned", nil)

		sink.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()
	notificationID := uuid.New()

	t.Run("only the recipient may mark read", func(t *testing.T) {
		service, notifications, _ := newNotificationService()
		notifications.On("GetByID", ctx, notificationID).Return(&model.Notification{
			ID: notificationID, RecipientID: uuid.New(),
		}, nil)

		_, err := service.MarkRead(ctx, recipientID, notificationID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("a foreign notification deletes as absent", func(t *testing.T) {
		service, notifications, _ := newNotificationService()
		notifications.On("GetByID", ctx, notificationID).Return(&model.Notification{
			ID: notificationID, RecipientID: uuid.New(),
		}, nil)

		err := service.Delete(ctx, recipientID, notificationID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		notifications.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
