package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
)

// Room is the game state shared by everyone who joined it: the current story,
// the question/answer log and the roster of participants.
type Room struct {
	ID           string        `json:"id"`
	CurrentStory Story         `json:"current_story"`
	ChatHistory  []ChatEntry   `json:"chat_history"`
	Players      []Participant `json:"players"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Participant is one browser session in a room. ID comes from the session cookie.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewRoom(id string) *Room {
	now := time.Now().UTC()

	return &Room{
		ID:           id,
		CurrentStory: DefaultStory(),
		ChatHistory:  []ChatEntry{},
		Players:      []Participant{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ReplaceStory - swaps the story and starts a fresh log for it.
func (that *Room) ReplaceStory(story Story) {
	that.CurrentStory = story
	that.ChatHistory = []ChatEntry{}
}

func (that *Room) AppendQuestion(sender, text string) (ChatEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatEntry{}, apperror.ErrEmptyQuestion
	}

	entry := newEntry(sender, text, TypeQuestion)
	that.ChatHistory = append(that.ChatHistory, entry)

	return entry, nil
}

// AppendAnswer - answers the newest entry, which has to be an unanswered question.
func (that *Room) AppendAnswer(text string) (ChatEntry, error) {
	if !IsValidAnswer(text) {
		return ChatEntry{}, apperror.ErrInvalidAnswer
	}

	question, ok := that.PendingQuestion()
	if !ok {
		return ChatEntry{}, apperror.ErrNoPendingQuestion
	}

	entry := newEntry(NarratorName, text, TypeAnswer)
	entry.ReplyTo = question.ID
	that.ChatHistory = append(that.ChatHistory, entry)

	return entry, nil
}

// PendingQuestion - the newest entry if it is a question nobody answered yet.
// An older question overtaken by a newer one is never pending again.
func (that *Room) PendingQuestion() (ChatEntry, bool) {
	if len(that.ChatHistory) == 0 {
		return ChatEntry{}, false
	}

	last := that.ChatHistory[len(that.ChatHistory)-1]
	if !last.IsQuestion() {
		return ChatEntry{}, false
	}

	return last, true
}

// AddPlayer - participants are keyed by id, so two people may share a display name.
// Joining again with a known id only updates the name.
func (that *Room) AddPlayer(id, name string) {
	for i := range that.Players {
		if that.Players[i].ID == id {
			that.Players[i].Name = name
			return
		}
	}

	that.Players = append(that.Players, Participant{ID: id, Name: name})
}

func (that *Room) RemovePlayer(id string) bool {
	for i, player := range that.Players {
		if player.ID == id {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return true
		}
	}

	return false
}

func (that *Room) HasPlayer(id string) bool {
	for _, player := range that.Players {
		if player.ID == id {
			return true
		}
	}

	return false
}

// PlayerNames - display names in join order, duplicates included.
func (that *Room) PlayerNames() []string {
	names := make([]string, 0, len(that.Players))
	for _, player := range that.Players {
		names = append(names, player.Name)
	}

	return names
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

func newEntry(sender, message string, entryType EntryType) ChatEntry {
	return ChatEntry{
		ID:        uuid.NewString(),
		Sender:    sender,
		Message:   message,
		Type:      entryType,
		CreatedAt: time.Now().UTC(),
	}
}
