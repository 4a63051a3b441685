package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

const maxUpdateRetries = 5

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RoomRepository - Update runs fn on the freshest copy of the room and stores the result;
// an error from fn aborts the update and is returned as is.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	Update(ctx context.Context, id string, fn func(room *entity.Room) error) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbRoom struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomRepository - rooms are stored as JSON under "room:<id>" and expire after ttl without writes.
func NewRoomRepository(client *redis.Client, ttl time.Duration) RoomRepository {
	return &dbRoom{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbRoom) Create(ctx context.Context, room *entity.Room) error {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("could not marshal room: %w", err)
	}

	created, err := that.client.SetNX(ctx, roomKey(room.ID), roomJSON, that.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: %s", apperror.ErrRoomAlreadyExists, room.ID)
	}

	return nil
}

func (that *dbRoom) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	return getRoom(ctx, that.client, roomKey(id))
}

// Update - optimistic read-modify-write guarded by WATCH; retried when another writer wins.
func (that *dbRoom) Update(ctx context.Context, id string, fn func(room *entity.Room) error) (*entity.Room, error) {
	key := roomKey(id)

	var updated *entity.Room
	txf := func(tx *redis.Tx) error {
		room, err := getRoom(ctx, tx, key)
		if err != nil {
			return err
		}

		if err = fn(room); err != nil {
			return err
		}

		room.UpdatedAt = time.Now().UTC()

		roomJSON, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("could not marshal room: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, roomJSON, that.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = room
		return nil
	}

	for range maxUpdateRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, fmt.Errorf("%w: room %s", apperror.ErrConflict, id)
}

func (that *dbRoom) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, roomKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete room by ID: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrRoomNotFound
	}

	return nil
}

func getRoom(ctx context.Context, client getter, key string) (*entity.Room, error) {
	response, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room entity.Room
	if err = json.Unmarshal([]byte(response), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

func roomKey(id string) string {
	return "room:" + id
}
