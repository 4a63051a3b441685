package rest

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/view"
)

type actionError struct {
	target  error
	kind    view.FlashKind
	message string
}

// actionErrors - failures that end one user action and are reported back on the room page.
var actionErrors = []actionError{
	{apperror.ErrMissingCredential, view.FlashWarning, "Add meg a Google API kulcsot a beállításoknál!"},
	{apperror.ErrMalformedResponse, view.FlashError, "Az AI válasza nem volt megfelelő formátumú. Próbáld újra!"},
	{apperror.ErrEmptyQuestion, view.FlashWarning, "Üres kérdést nem lehet elküldeni."},
	{apperror.ErrInvalidAnswer, view.FlashWarning, "Csak IGEN, NEM vagy NEM RELEVÁNS lehet a válasz."},
	{apperror.ErrNoPendingQuestion, view.FlashWarning, "Nincs megválaszolatlan kérdés."},
	{apperror.ErrStaleQuestion, view.FlashWarning, "Közben új kérdés érkezett, frissítsd az oldalt."},
}

// writeActionError - maps a use case error to its HTTP outcome.
func (that *roomHandler) writeActionError(w http.ResponseWriter, r *http.Request, roomID string, err error) {
	log := that.logger.With("method", "writeActionError", "room_id", roomID)

	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		setFlash(w, view.FlashError, "A szoba nem létezik vagy lejárt.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return

	case errors.Is(err, apperror.ErrConflict):
		log.Warn("room update conflict", "error", err)
		setFlash(w, view.FlashError, "A szobát közben más is módosította, próbáld újra.")
		http.Error(w, "Conflict", http.StatusConflict)
		return

	case errors.Is(err, apperror.ErrForbiddenRole):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return

	case errors.Is(err, apperror.ErrGenerationFailed):
		setFlash(w, view.FlashError, "Hiba a Gemini AI hívásakor: "+err.Error())
		http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
		return
	}

	for _, known := range actionErrors {
		if errors.Is(err, known.target) {
			setFlash(w, known.kind, known.message)
			http.Redirect(w, r, roomPath(roomID), http.StatusSeeOther)
			return
		}
	}

	log.Error("unexpected error", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
