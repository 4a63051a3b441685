package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
	"github.com/rocketscienceinc/blackstories-backend/internal/pkg"
)

const (
	maxCreateAttempts = 5

	DefaultPlayerName = "Player 1"
)

type roomRepo interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	Update(ctx context.Context, id string, fn func(room *entity.Room) error) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
}

type storyGenerator interface {
	Generate(ctx context.Context, credential string) (entity.Story, error)
}

type GameManager struct {
	logger *slog.Logger

	roomRepo  roomRepo
	generator storyGenerator

	fallbackCredential string
}

// NewGameManager - fallbackCredential is used for generation when the caller brings no key of their own.
func NewGameManager(logger *slog.Logger, roomRepo roomRepo, generator storyGenerator, fallbackCredential string) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		roomRepo:  roomRepo,
		generator: generator,

		fallbackCredential: strings.TrimSpace(fallbackCredential),
	}
}

func (that *GameManager) CreateRoom(ctx context.Context) (*entity.Room, error) {
	log := that.logger.With("method", "CreateRoom")

	for range maxCreateAttempts {
		room := entity.NewRoom(pkg.GenerateRoomID())

		err := that.roomRepo.Create(ctx, room)
		if errors.Is(err, apperror.ErrRoomAlreadyExists) {
			log.Debug("room id already taken, retrying", "room_id", room.ID)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}

		log.Info("room created", "room_id", room.ID)

		return room, nil
	}

	return nil, fmt.Errorf("failed to create room: %w", apperror.ErrRoomAlreadyExists)
}

func (that *GameManager) GetRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// JoinRoom - adds the participant to the roster. Joining again with the same id only renames.
func (that *GameManager) JoinRoom(ctx context.Context, roomID, participantID, name string) (*entity.Room, error) {
	if participantID == "" {
		return nil, apperror.ErrMissingParticipant
	}

	name = NormalizeName(name)

	room, err := that.roomRepo.Update(ctx, roomID, func(room *entity.Room) error {
		room.AddPlayer(participantID, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	that.logger.Info("player joined", "room_id", roomID, "participant_id", participantID, "name", name)

	return room, nil
}

// LeaveRoom - removes the participant and deletes the room once nobody is left.
func (that *GameManager) LeaveRoom(ctx context.Context, roomID, participantID string) error {
	log := that.logger.With("method", "LeaveRoom")

	if participantID == "" {
		return apperror.ErrMissingParticipant
	}

	room, err := that.roomRepo.Update(ctx, roomID, func(room *entity.Room) error {
		room.RemovePlayer(participantID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	log.Info("player left", "room_id", roomID, "participant_id", participantID)

	if !room.IsEmpty() {
		return nil
	}

	if err = that.roomRepo.DeleteByID(ctx, roomID); err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
		return fmt.Errorf("failed to delete empty room: %w", err)
	}

	log.Info("room deleted", "room_id", roomID)

	return nil
}

func (that *GameManager) AskQuestion(ctx context.Context, roomID, sender, text string) (*entity.Room, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ErrEmptyQuestion
	}

	sender = NormalizeName(sender)

	room, err := that.roomRepo.Update(ctx, roomID, func(room *entity.Room) error {
		_, appendErr := room.AppendQuestion(sender, text)
		return appendErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ask question: %w", err)
	}

	return room, nil
}

// AnswerQuestion - questionID is the question the narrator saw; an empty one answers whatever is pending.
func (that *GameManager) AnswerQuestion(ctx context.Context, roomID, questionID, answer string) (*entity.Room, error) {
	if !entity.IsValidAnswer(answer) {
		return nil, apperror.ErrInvalidAnswer
	}

	room, err := that.roomRepo.Update(ctx, roomID, func(room *entity.Room) error {
		pending, ok := room.PendingQuestion()
		if !ok {
			return apperror.ErrNoPendingQuestion
		}

		if questionID != "" && pending.ID != questionID {
			return apperror.ErrStaleQuestion
		}

		_, appendErr := room.AppendAnswer(answer)
		return appendErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	return room, nil
}

// GenerateStory - the provider call happens before the room is touched, so a failed
// generation leaves story and log exactly as they were.
func (that *GameManager) GenerateStory(ctx context.Context, roomID, credential string) (*entity.Room, error) {
	log := that.logger.With("method", "GenerateStory")

	credential = that.resolveCredential(credential)
	if credential == "" {
		return nil, apperror.ErrMissingCredential
	}

	if _, err := that.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	story, err := that.generator.Generate(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to generate story: %w", err)
	}

	room, err := that.roomRepo.Update(ctx, roomID, func(room *entity.Room) error {
		room.ReplaceStory(story)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store story: %w", err)
	}

	log.Info("story replaced", "room_id", roomID, "title", story.Title)

	return room, nil
}

func (that *GameManager) CanGenerate(credential string) bool {
	return that.resolveCredential(credential) != ""
}

func (that *GameManager) resolveCredential(credential string) string {
	if credential = strings.TrimSpace(credential); credential != "" {
		return credential
	}

	return that.fallbackCredential
}

// NormalizeName - trimmed display name, or the default one when nothing is left.
func NormalizeName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return DefaultPlayerName
	}

	return name
}
