package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

type memoryRecord struct {
	payload   []byte
	expiresAt time.Time
}

// memoryRoom keeps rooms as JSON in process memory, so readers never share pointers
// with the stored state, same as with redis.
type memoryRoom struct {
	mu    sync.Mutex
	rooms map[string]memoryRecord
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryRoomRepository(ttl time.Duration) RoomRepository {
	return newMemoryRoomRepository(ttl, time.Now)
}

func newMemoryRoomRepository(ttl time.Duration, now func() time.Time) *memoryRoom {
	return &memoryRoom{
		rooms: make(map[string]memoryRecord),
		ttl:   ttl,
		now:   now,
	}
}

func (that *memoryRoom) Create(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	if _, ok := that.rooms[room.ID]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrRoomAlreadyExists, room.ID)
	}

	return that.store(room)
}

func (that *memoryRoom) GetByID(_ context.Context, id string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.load(id)
}

func (that *memoryRoom) Update(_ context.Context, id string, fn func(room *entity.Room) error) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.load(id)
	if err != nil {
		return nil, err
	}

	if err = fn(room); err != nil {
		return nil, err
	}

	room.UpdatedAt = that.now().UTC()

	if err = that.store(room); err != nil {
		return nil, err
	}

	return room, nil
}

func (that *memoryRoom) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.load(id); err != nil {
		return err
	}

	delete(that.rooms, id)

	return nil
}

func (that *memoryRoom) load(id string) (*entity.Room, error) {
	record, ok := that.rooms[id]
	if !ok || that.expired(record) {
		delete(that.rooms, id)
		return nil, apperror.ErrRoomNotFound
	}

	var room entity.Room
	if err := json.Unmarshal(record.payload, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

func (that *memoryRoom) store(room *entity.Room) error {
	payload, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("could not marshal room: %w", err)
	}

	record := memoryRecord{payload: payload}
	if that.ttl > 0 {
		record.expiresAt = that.now().Add(that.ttl)
	}

	that.rooms[room.ID] = record

	return nil
}

func (that *memoryRoom) evictExpired() {
	for id, record := range that.rooms {
		if that.expired(record) {
			delete(that.rooms, id)
		}
	}
}

func (that *memoryRoom) expired(record memoryRecord) bool {
	return !record.expiresAt.IsZero() && !that.now().Before(record.expiresAt)
}
