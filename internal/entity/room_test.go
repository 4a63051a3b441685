package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
)

func TestNewRoom(t *testing.T) {
	// Given: a new room
	room := NewRoom("abc")

	// Then: it starts with the built-in story, an empty log and no players
	assert.Equal(t, "abc", room.ID)
	assert.Equal(t, DefaultStory(), room.CurrentStory)
	assert.False(t, room.CurrentStory.IsZero())
	assert.Empty(t, room.ChatHistory)
	assert.True(t, room.IsEmpty())
}

func TestRoom_AppendQuestion(t *testing.T) {
	t.Run("Appends a question attributed to the sender", func(t *testing.T) {
		// Given: an empty room
		room := NewRoom("abc")

		// When: a player asks a question
		entry, err := room.AppendQuestion("Anna", "Is it cold?")
		require.NoError(t, err)

		// Then: the log holds exactly that question
		require.Len(t, room.ChatHistory, 1)
		assert.Equal(t, "Anna", room.ChatHistory[0].Sender)
		assert.Equal(t, "Is it cold?", room.ChatHistory[0].Message)
		assert.Equal(t, TypeQuestion, room.ChatHistory[0].Type)
		assert.Equal(t, entry, room.ChatHistory[0])
		assert.NotEmpty(t, entry.ID)
	})

	t.Run("Rejects blank text", func(t *testing.T) {
		// Given: an empty room
		room := NewRoom("abc")

		// When: a player submits whitespace
		_, err := room.AppendQuestion("Anna", "   ")

		// Then: ErrEmptyQuestion is returned and nothing is logged
		require.ErrorIs(t, err, apperror.ErrEmptyQuestion)
		assert.Empty(t, room.ChatHistory)
	})
}

func TestRoom_AppendAnswer(t *testing.T) {
	t.Run("Answers the pending question", func(t *testing.T) {
		// Given: a room with one unanswered question
		room := NewRoom("abc")
		question, err := room.AppendQuestion("Anna", "Is it cold?")
		require.NoError(t, err)

		// When: the narrator answers NO
		answer, err := room.AppendAnswer(AnswerNo)
		require.NoError(t, err)

		// Then: the answer follows the question and points at it
		require.Len(t, room.ChatHistory, 2)
		assert.Equal(t, NarratorName, answer.Sender)
		assert.Equal(t, AnswerNo, answer.Message)
		assert.Equal(t, TypeAnswer, answer.Type)
		assert.Equal(t, question.ID, answer.ReplyTo)

		// And: no question is pending anymore
		_, pending := room.PendingQuestion()
		assert.False(t, pending)
	})

	t.Run("Rejects unknown answer text", func(t *testing.T) {
		// Given: a room with one unanswered question
		room := NewRoom("abc")
		_, err := room.AppendQuestion("Anna", "Is it cold?")
		require.NoError(t, err)

		// When: the narrator answers with a free-form text
		_, err = room.AppendAnswer("maybe")

		// Then: ErrInvalidAnswer is returned
		require.ErrorIs(t, err, apperror.ErrInvalidAnswer)
		assert.Len(t, room.ChatHistory, 1)
	})

	t.Run("Rejects an answer when the newest entry is an answer", func(t *testing.T) {
		// Given: a room where the last question is already answered
		room := NewRoom("abc")
		_, err := room.AppendQuestion("Anna", "Is it cold?")
		require.NoError(t, err)
		_, err = room.AppendAnswer(AnswerYes)
		require.NoError(t, err)

		// When: the narrator answers again
		_, err = room.AppendAnswer(AnswerNotRelevant)

		// Then: ErrNoPendingQuestion is returned
		require.ErrorIs(t, err, apperror.ErrNoPendingQuestion)
		assert.Len(t, room.ChatHistory, 2)
	})

	t.Run("Rejects an answer on an empty log", func(t *testing.T) {
		room := NewRoom("abc")

		_, err := room.AppendAnswer(AnswerYes)

		require.ErrorIs(t, err, apperror.ErrNoPendingQuestion)
	})
}

func TestRoom_PendingQuestion(t *testing.T) {
	t.Run("Only the newest question is pending", func(t *testing.T) {
		// Given: two questions in a row
		room := NewRoom("abc")
		_, err := room.AppendQuestion("Anna", "Is it cold?")
		require.NoError(t, err)
		second, err := room.AppendQuestion("Béla", "Was it night?")
		require.NoError(t, err)

		// When: asking for the pending question
		pending, ok := room.PendingQuestion()

		// Then: it is the second one
		require.True(t, ok)
		assert.Equal(t, second.ID, pending.ID)
	})
}

func TestRoom_ReplaceStory(t *testing.T) {
	t.Run("Clears a non-empty log", func(t *testing.T) {
		// Given: a room with a question and an answer
		room := NewRoom("abc")
		_, err := room.AppendQuestion("Anna", "Is it cold?")
		require.NoError(t, err)
		_, err = room.AppendAnswer(AnswerYes)
		require.NoError(t, err)

		// When: the story is replaced
		story := Story{Title: "X", Riddle: "Y", Solution: "Z"}
		room.ReplaceStory(story)

		// Then: the new story is current and the log is empty
		assert.Equal(t, story, room.CurrentStory)
		assert.Empty(t, room.ChatHistory)
	})

	t.Run("Keeps an empty log empty", func(t *testing.T) {
		room := NewRoom("abc")

		room.ReplaceStory(Story{Title: "X", Riddle: "Y", Solution: "Z"})

		assert.NotNil(t, room.ChatHistory)
		assert.Empty(t, room.ChatHistory)
	})
}

func TestRoom_Players(t *testing.T) {
	// Given: a room
	room := NewRoom("abc")

	// When: two people join, one of them twice with a new name
	room.AddPlayer("p1", "Anna")
	room.AddPlayer("p2", "Béla")
	room.AddPlayer("p1", "Anni")

	// Then: the roster keeps join order and the latest name
	assert.Equal(t, []string{"Anni", "Béla"}, room.PlayerNames())
	assert.True(t, room.HasPlayer("p1"))

	// When: both leave
	assert.True(t, room.RemovePlayer("p1"))
	assert.False(t, room.RemovePlayer("p1"))
	assert.True(t, room.RemovePlayer("p2"))

	// Then: the room is empty
	assert.True(t, room.IsEmpty())
}

func TestRoom_Players_SameName(t *testing.T) {
	// Given: two participants with the same display name
	room := NewRoom("abc")
	room.AddPlayer("p1", "Player 1")
	room.AddPlayer("p2", "Player 1")

	// Then: both are on the roster
	assert.Equal(t, []string{"Player 1", "Player 1"}, room.PlayerNames())

	// When: one of them leaves
	assert.True(t, room.RemovePlayer("p1"))

	// Then: the other one is still there
	assert.False(t, room.IsEmpty())
	assert.True(t, room.HasPlayer("p2"))
}

func TestIsValidAnswer(t *testing.T) {
	assert.True(t, IsValidAnswer(AnswerYes))
	assert.True(t, IsValidAnswer(AnswerNo))
	assert.True(t, IsValidAnswer(AnswerNotRelevant))
	assert.False(t, IsValidAnswer("yes"))
	assert.False(t, IsValidAnswer(""))
}
