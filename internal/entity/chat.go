package entity

import "time"

type EntryType string

const (
	TypeQuestion EntryType = "question"
	TypeAnswer   EntryType = "answer"
)

const (
	AnswerYes         = "YES"
	AnswerNo          = "NO"
	AnswerNotRelevant = "NOT RELEVANT"

	NarratorName = "Narrator"
)

// Answers - the only texts the narrator controls produce, in display order.
var Answers = []string{AnswerYes, AnswerNo, AnswerNotRelevant}

type ChatEntry struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Type      EntryType `json:"type"`
	ReplyTo   string    `json:"reply_to,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (that ChatEntry) IsQuestion() bool {
	return that.Type == TypeQuestion
}

func (that ChatEntry) IsAnswer() bool {
	return that.Type == TypeAnswer
}

func IsValidAnswer(text string) bool {
	for _, answer := range Answers {
		if text == answer {
			return true
		}
	}

	return false
}
