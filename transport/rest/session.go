package rest

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/blackstories-backend/internal/view"
)

const (
	cookieID         = "bs_participant"
	cookieName       = "bs_name"
	cookieRole       = "bs_role"
	cookieCredential = "bs_credential"
	cookieFlash      = "bs_flash"

	flashKindSeparator = ":"

	sessionMaxAge = 12 * time.Hour
	maxFlashRunes = 300
)

// session lives only in the caller's cookies, scoped to the room path, so one browser
// can sit in several rooms with different roles. The credential is never stored server-side.
type session struct {
	ParticipantID string
	Name          string
	Role          view.Role
	Credential    string
}

func readSession(r *http.Request) (session, bool) {
	participantID, ok := readCookie(r, cookieID)
	if !ok || participantID == "" {
		return session{}, false
	}

	name, ok := readCookie(r, cookieName)
	if !ok || name == "" {
		return session{}, false
	}

	role, _ := readCookie(r, cookieRole)
	credential, _ := readCookie(r, cookieCredential)

	return session{
		ParticipantID: participantID,
		Name:          name,
		Role:          view.ParseRole(role),
		Credential:    credential,
	}, true
}

func writeSession(w http.ResponseWriter, roomID string, s session) {
	path := roomPath(roomID)

	setCookie(w, path, cookieID, s.ParticipantID, sessionMaxAge)
	setCookie(w, path, cookieName, s.Name, sessionMaxAge)
	setCookie(w, path, cookieRole, string(s.Role), sessionMaxAge)
	setCookie(w, path, cookieCredential, s.Credential, sessionMaxAge)
}

func clearSession(w http.ResponseWriter, roomID string) {
	path := roomPath(roomID)

	for _, name := range []string{cookieID, cookieName, cookieRole, cookieCredential} {
		setCookie(w, path, name, "", -1)
	}
}

func setFlash(w http.ResponseWriter, kind view.FlashKind, message string) {
	if runes := []rune(message); len(runes) > maxFlashRunes {
		message = string(runes[:maxFlashRunes]) + "…"
	}

	setCookie(w, "/", cookieFlash, string(kind)+flashKindSeparator+message, time.Minute)
}

// popFlash - reads the flash message left by the previous redirect and expires it.
func popFlash(w http.ResponseWriter, r *http.Request) *view.Flash {
	value, ok := readCookie(r, cookieFlash)
	if !ok || value == "" {
		return nil
	}

	setCookie(w, "/", cookieFlash, "", -1)

	kind, message, found := strings.Cut(value, flashKindSeparator)
	if !found {
		return &view.Flash{Kind: view.FlashWarning, Message: value}
	}

	return &view.Flash{Kind: view.FlashKind(kind), Message: message}
}

func readCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", false
	}

	return value, true
}

// setCookie - values are query-escaped because display names are rarely plain ASCII.
func setCookie(w http.ResponseWriter, path, name, value string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     path,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	if maxAge < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
		cookie.Expires = time.Now().Add(maxAge)
	}

	http.SetCookie(w, cookie)
}

func roomPath(roomID string) string {
	return "/rooms/" + roomID
}
