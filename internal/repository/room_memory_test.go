package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

var errRejected = errors.New("rejected")

type fakeClock struct {
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	return that.now
}

func TestMemoryRoomRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	roomRepo := NewMemoryRoomRepository(time.Hour)

	// Given: a stored room
	room := entity.NewRoom("abc")
	require.NoError(t, roomRepo.Create(ctx, room))

	// When: it is loaded back
	retrieved, err := roomRepo.GetByID(ctx, "abc")

	// Then: it equals the stored one but is a separate copy
	require.NoError(t, err)
	assert.Equal(t, room.ID, retrieved.ID)
	assert.Equal(t, room.CurrentStory, retrieved.CurrentStory)

	retrieved.CurrentStory.Title = "changed"
	again, err := roomRepo.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultStory().Title, again.CurrentStory.Title)

	// And: the same id cannot be created twice
	require.ErrorIs(t, roomRepo.Create(ctx, entity.NewRoom("abc")), apperror.ErrRoomAlreadyExists)
}

func TestMemoryRoomRepository_GetByID_NotFound(t *testing.T) {
	roomRepo := NewMemoryRoomRepository(time.Hour)

	retrieved, err := roomRepo.GetByID(context.Background(), "missing")

	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	assert.Nil(t, retrieved)
}

func TestMemoryRoomRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists the mutation", func(t *testing.T) {
		// Given: a stored room
		roomRepo := NewMemoryRoomRepository(time.Hour)
		require.NoError(t, roomRepo.Create(ctx, entity.NewRoom("abc")))

		// When: a question is appended through Update
		updated, err := roomRepo.Update(ctx, "abc", func(room *entity.Room) error {
			_, appendErr := room.AppendQuestion("Anna", "Is it cold?")
			return appendErr
		})
		require.NoError(t, err)

		// Then: both the result and the stored room contain it
		require.Len(t, updated.ChatHistory, 1)
		stored, err := roomRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, updated.ChatHistory, stored.ChatHistory)
	})

	t.Run("Leaves the room untouched when the mutation fails", func(t *testing.T) {
		// Given: a stored room
		roomRepo := NewMemoryRoomRepository(time.Hour)
		require.NoError(t, roomRepo.Create(ctx, entity.NewRoom("abc")))

		// When: the mutation changes the room and then fails
		_, err := roomRepo.Update(ctx, "abc", func(room *entity.Room) error {
			room.ReplaceStory(entity.Story{Title: "X", Riddle: "Y", Solution: "Z"})
			return errRejected
		})

		// Then: the error is returned and nothing is stored
		require.ErrorIs(t, err, errRejected)
		stored, err := roomRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultStory(), stored.CurrentStory)
	})

	t.Run("Returns ErrRoomNotFound for unknown rooms", func(t *testing.T) {
		roomRepo := NewMemoryRoomRepository(time.Hour)

		_, err := roomRepo.Update(ctx, "missing", func(*entity.Room) error { return nil })

		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestMemoryRoomRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	roomRepo := NewMemoryRoomRepository(time.Hour)
	require.NoError(t, roomRepo.Create(ctx, entity.NewRoom("abc")))

	require.NoError(t, roomRepo.DeleteByID(ctx, "abc"))

	_, err := roomRepo.GetByID(ctx, "abc")
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	require.ErrorIs(t, roomRepo.DeleteByID(ctx, "abc"), apperror.ErrRoomNotFound)
}

func TestMemoryRoomRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	roomRepo := newMemoryRoomRepository(time.Hour, clock.Now)

	// Given: a room created at noon
	require.NoError(t, roomRepo.Create(ctx, entity.NewRoom("abc")))

	// When: it is written again after 50 minutes
	clock.now = clock.now.Add(50 * time.Minute)
	_, err := roomRepo.Update(ctx, "abc", func(*entity.Room) error { return nil })
	require.NoError(t, err)

	// Then: the write refreshed its TTL
	clock.now = clock.now.Add(50 * time.Minute)
	_, err = roomRepo.GetByID(ctx, "abc")
	require.NoError(t, err)

	// When: it sits idle longer than the TTL
	clock.now = clock.now.Add(2 * time.Hour)

	// Then: it is gone
	_, err = roomRepo.GetByID(ctx, "abc")
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
}
