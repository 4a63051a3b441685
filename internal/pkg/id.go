package pkg

import (
	"strings"

	"github.com/google/uuid"
)

const roomIDLength = 8

// GenerateRoomID - short room code players can type or share.
func GenerateRoomID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:roomIDLength])
}

// NewParticipantID - identifies one browser session inside a room.
func NewParticipantID() string {
	return uuid.NewString()
}
