package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

func TestNoteService(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	noteID := uuid.New()

	t.Run("hides another user's note", func(t *testing.T) {
		notes := new(MockNoteRepository)
		service := usecase.NewNoteService(notes)
		notes.On("GetByID", ctx, noteID).Return(&model.Note{ID: noteID, OwnerID: uuid.New()}, nil)

		_, err := service.Get(ctx, ownerID, noteID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("lists only pinned notes", func(t *testing.T) {
		notes := new(MockNoteRepository)
		service := usecase.NewNoteService(notes)
		pinned := []model.Note{{ID: noteID, OwnerID: ownerID, Title: "standup questions", IsPinned: true}}
		notes.On("ListPinnedByOwner", ctx, ownerID).Return(pinned, nil)

		got, err := service.ListPinned(ctx, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, pinned, got)
		notes.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	})

	t.Run("requires a title on create", func(t *testing.T) {
		notes := new(MockNoteRepository)
		service := usecase.NewNoteService(notes)

		_, err := service.Create(ctx, ownerID, "", "body")

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
		notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects blanking the title on update", func(t *testing.T) {
		notes := new(MockNoteRepository)
		service := usecase.NewNoteService(notes)
		blank := "   "
		notes.On("GetByID", ctx, noteID).Return(&model.Note{ID: noteID, OwnerID: ownerID}, nil)

		_, err := service.Update(ctx, ownerID, noteID, model.NoteUpdate{Title: &blank})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes only through the owner", func(t *testing.T) {
		notes := new(MockNoteRepository)
		service := usecase.NewNoteService(notes)
		notes.On("GetByID", ctx, noteID).Return(&model.Note{ID: noteID, OwnerID: ownerID}, nil)
		notes.On("Delete", ctx, noteID).Return(nil)

		err := service.Delete(ctx, ownerID, noteID)

		assert.NoError(t, err)
		notes.AssertExpectations(t)
	})
}
