package rest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
	"github.com/rocketscienceinc/blackstories-backend/internal/pkg"
	"github.com/rocketscienceinc/blackstories-backend/internal/usecase"
	"github.com/rocketscienceinc/blackstories-backend/internal/view"
)

type gameManager interface {
	CreateRoom(ctx context.Context) (*entity.Room, error)
	GetRoom(ctx context.Context, roomID string) (*entity.Room, error)
	JoinRoom(ctx context.Context, roomID, participantID, name string) (*entity.Room, error)
	LeaveRoom(ctx context.Context, roomID, participantID string) error
	AskQuestion(ctx context.Context, roomID, sender, text string) (*entity.Room, error)
	AnswerQuestion(ctx context.Context, roomID, questionID, answer string) (*entity.Room, error)
	GenerateStory(ctx context.Context, roomID, credential string) (*entity.Room, error)
	CanGenerate(credential string) bool
}

type renderer interface {
	RenderIndex(w io.Writer, page view.IndexPage) error
	RenderJoin(w io.Writer, page view.JoinPage) error
	Render(w io.Writer, page view.Page) error
}

type roomHandler struct {
	logger *slog.Logger

	game     gameManager
	renderer renderer
}

func newRoomHandler(logger *slog.Logger, game gameManager, renderer renderer) *roomHandler {
	return &roomHandler{
		logger:   logger.With("component", "rest"),
		game:     game,
		renderer: renderer,
	}
}

func (that *roomHandler) Index(w http.ResponseWriter, r *http.Request) {
	that.write(w, func(buf io.Writer) error {
		return that.renderer.RenderIndex(buf, view.IndexPage{Flash: popFlash(w, r)})
	})
}

// JoinByCode - the landing page form submits the code as a query parameter.
func (that *roomHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
	roomID := normalizeRoomID(r.URL.Query().Get("id"))
	if roomID == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
}

func (that *roomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	room, err := that.game.CreateRoom(r.Context())
	if err != nil {
		that.writeActionError(w, r, "", err)
		return
	}

	http.Redirect(w, r, roomPath(room.ID), http.StatusSeeOther)
}

// ShowRoom - renders the caller's view; doubles as the refresh action.
// Without a session, or with ?settings, the settings form is shown instead.
func (that *roomHandler) ShowRoom(w http.ResponseWriter, r *http.Request) {
	roomID := normalizeRoomID(r.PathValue("id"))
	if roomID != r.PathValue("id") {
		http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
		return
	}

	room, err := that.game.GetRoom(r.Context(), roomID)
	if err != nil {
		that.writeActionError(w, r, roomID, err)
		return
	}

	flash := popFlash(w, r)

	s, ok := readSession(r)
	if !ok || r.URL.Query().Has("settings") {
		that.write(w, func(buf io.Writer) error {
			return that.renderer.RenderJoin(buf, view.JoinPage{
				RoomID: room.ID,
				Name:   s.Name,
				Role:   s.Role,
				Flash:  flash,
			})
		})
		return
	}

	page := view.Build(room, view.Session{
		Name:        s.Name,
		Role:        s.Role,
		CanGenerate: that.game.CanGenerate(s.Credential),
	})
	page.Flash = flash

	that.write(w, func(buf io.Writer) error {
		return that.renderer.Render(buf, page)
	})
}

// SaveSession - settings form: name, role and the optional AI credential.
// An empty credential field keeps the one already stored in the cookie.
// A returning browser keeps its participant id, so renaming never touches anyone else.
func (that *roomHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	roomID := normalizeRoomID(r.PathValue("id"))

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	previous, hadSession := readSession(r)

	participantID := previous.ParticipantID
	if !hadSession {
		participantID = pkg.NewParticipantID()
	}

	next := session{
		ParticipantID: participantID,
		Name:          usecase.NormalizeName(r.PostForm.Get("name")),
		Role:          view.ParseRole(r.PostForm.Get("role")),
		Credential:    strings.TrimSpace(r.PostForm.Get("credential")),
	}
	if next.Credential == "" {
		next.Credential = previous.Credential
	}

	if _, err := that.game.JoinRoom(r.Context(), roomID, next.ParticipantID, next.Name); err != nil {
		that.writeActionError(w, r, roomID, err)
		return
	}

	writeSession(w, roomID, next)
	http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
}

func (that *roomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	roomID := normalizeRoomID(r.PathValue("id"))

	s, ok := readSession(r)
	if ok {
		if err := that.game.LeaveRoom(r.Context(), roomID, s.ParticipantID); err != nil && !isRoomNotFound(err) {
			that.writeActionError(w, r, roomID, err)
			return
		}
	}

	clearSession(w, roomID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *roomHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	roomID, s, ok := that.requireRole(w, r, view.RolePlayer)
	if !ok {
		return
	}

	if _, err := that.game.AskQuestion(r.Context(), roomID, s.Name, r.PostFormValue("question")); err != nil {
		that.writeActionError(w, r, roomID, err)
		return
	}

	http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
}

func (that *roomHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	roomID, _, ok := that.requireRole(w, r, view.RoleNarrator)
	if !ok {
		return
	}

	_, err := that.game.AnswerQuestion(r.Context(), roomID, r.PostFormValue("question_id"), r.PostFormValue("answer"))
	if err != nil {
		that.writeActionError(w, r, roomID, err)
		return
	}

	http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
}

func (that *roomHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	roomID, s, ok := that.requireRole(w, r, view.RoleNarrator)
	if !ok {
		return
	}

	if _, err := that.game.GenerateStory(r.Context(), roomID, s.Credential); err != nil {
		that.writeActionError(w, r, roomID, err)
		return
	}

	setFlash(w, view.FlashSuccess, "Új történet sikeresen betöltve!")
	http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
}

func (that *roomHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	roomID, _, ok := that.requireRole(w, r, view.RoleNarrator)
	if !ok {
		return
	}

	room, err := that.game.GetRoom(r.Context(), roomID)
	if err != nil {
		that.writeActionError(w, r, roomID, err)
		return
	}

	var buf bytes.Buffer
	if err = view.WriteTranscript(&buf, room); err != nil {
		that.logger.Error("failed to build transcript", "room_id", roomID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="blackstories-`+roomID+`.pdf"`)
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(buf.Bytes()); err != nil {
		that.logger.Warn("failed to send transcript", "room_id", roomID, "error", err)
	}
}

// requireRole - callers without a session are sent to the settings form,
// callers with the other role get 403.
func (that *roomHandler) requireRole(w http.ResponseWriter, r *http.Request, role view.Role) (string, session, bool) {
	roomID := normalizeRoomID(r.PathValue("id"))

	s, ok := readSession(r)
	if !ok {
		http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
		return "", session{}, false
	}

	if s.Role != role {
		that.writeActionError(w, r, roomID, apperror.ErrForbiddenRole)
		return "", session{}, false
	}

	return roomID, s, true
}

// write renders into a buffer first so a template error still produces a clean 500.
func (that *roomHandler) write(w http.ResponseWriter, render func(buf io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		that.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf.Bytes()); err != nil {
		that.logger.Warn("failed to write response", "error", err)
	}
}

func normalizeRoomID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func isRoomNotFound(err error) bool {
	return errors.Is(err, apperror.ErrRoomNotFound)
}
