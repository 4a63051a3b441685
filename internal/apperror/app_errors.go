package apperror

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrConflict          = errors.New("room was changed concurrently")
	ErrForbiddenRole     = errors.New("action is not available for this role")

	ErrMissingParticipant = errors.New("participant id is missing")

	ErrEmptyQuestion     = errors.New("question is empty")
	ErrInvalidAnswer     = errors.New("answer must be YES, NO or NOT RELEVANT")
	ErrNoPendingQuestion = errors.New("there is no unanswered question")
	ErrStaleQuestion     = errors.New("question is no longer the pending one")

	ErrMissingCredential = errors.New("AI provider credential is missing")
	ErrGenerationFailed  = errors.New("story generation failed")
	ErrMalformedResponse = errors.New("AI response is not in TITLE ||| RIDDLE ||| SOLUTION format")
)
