package view

import (
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

const AIStudioURL = "https://aistudio.google.com/app/apikey"

type Role string

const (
	RolePlayer   Role = "player"
	RoleNarrator Role = "narrator"
)

// ParseRole - anything that is not the narrator is a player.
func ParseRole(value string) Role {
	if Role(value) == RoleNarrator {
		return RoleNarrator
	}

	return RolePlayer
}

// Session is what the page needs to know about the viewer. The credential itself never reaches a view.
type Session struct {
	Name        string
	Role        Role
	CanGenerate bool
}

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

type Page struct {
	RoomID  string
	Session Session
	Players []string
	Log     []LogLine
	Flash   *Flash

	// Exactly one of them is set.
	Narrator *NarratorView
	Player   *PlayerView
}

type NarratorView struct {
	Title       string
	Riddle      string
	Solution    string
	CanGenerate bool
	AIStudioURL string
	Pending     *PendingQuestion
	Answers     []AnswerAction
}

// PlayerView has no solution on purpose: a player template cannot print what it is not given.
type PlayerView struct {
	Title  string
	Riddle string
}

type PendingQuestion struct {
	ID      string
	Sender  string
	Message string
}

type AnswerAction struct {
	Value string
	Label string
	Style string
}

type LogLine struct {
	Glyph   string
	Sender  string
	Message string
	Style   string
}

const (
	glyphQuestion = "❓"
	glyphAnswer   = "📢"

	styleQuestion = "question"
	stylePositive = "positive"
	styleNegative = "negative"
	styleNeutral  = "neutral"
)

// Build - pure (room, session) -> page mapping, called after every action.
func Build(room *entity.Room, session Session) Page {
	page := Page{
		RoomID:  room.ID,
		Session: session,
		Players: room.PlayerNames(),
		Log:     buildLog(room.ChatHistory),
	}

	story := room.CurrentStory

	if session.Role == RoleNarrator {
		narrator := &NarratorView{
			Title:       story.Title,
			Riddle:      story.Riddle,
			Solution:    story.Solution,
			CanGenerate: session.CanGenerate,
			AIStudioURL: AIStudioURL,
		}

		if question, ok := room.PendingQuestion(); ok {
			narrator.Pending = &PendingQuestion{
				ID:      question.ID,
				Sender:  question.Sender,
				Message: question.Message,
			}
			narrator.Answers = answerActions()
		}

		page.Narrator = narrator

		return page
	}

	page.Player = &PlayerView{
		Title:  story.Title,
		Riddle: story.Riddle,
	}

	return page
}

func buildLog(entries []entity.ChatEntry) []LogLine {
	lines := make([]LogLine, 0, len(entries))

	for _, entry := range entries {
		if entry.IsQuestion() {
			lines = append(lines, LogLine{
				Glyph:   glyphQuestion,
				Sender:  entry.Sender,
				Message: entry.Message,
				Style:   styleQuestion,
			})
			continue
		}

		lines = append(lines, LogLine{
			Glyph:   glyphAnswer,
			Sender:  entry.Sender,
			Message: answerLabel(entry.Message),
			Style:   answerStyle(entry.Message),
		})
	}

	return lines
}

func answerActions() []AnswerAction {
	actions := make([]AnswerAction, 0, len(entity.Answers))
	for _, answer := range entity.Answers {
		actions = append(actions, AnswerAction{
			Value: answer,
			Label: answerLabel(answer),
			Style: answerStyle(answer),
		})
	}

	return actions
}

func answerStyle(message string) string {
	switch message {
	case entity.AnswerYes:
		return stylePositive
	case entity.AnswerNo:
		return styleNegative
	default:
		return styleNeutral
	}
}

func answerLabel(message string) string {
	switch message {
	case entity.AnswerYes:
		return "IGEN"
	case entity.AnswerNo:
		return "NEM"
	case entity.AnswerNotRelevant:
		return "NEM RELEVÁNS"
	default:
		return message
	}
}
