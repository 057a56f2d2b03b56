package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"eventeditor/internal/domain"
)

const flashCookie = "flash"

// setFlash stores notices for the next page the browser loads.
func setFlash(w http.ResponseWriter, notices []domain.Notice) {
	if len(notices) == 0 {
		return
	}
	b, err := json.Marshal(notices)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the flash cookie. A malformed cookie is dropped.
func takeFlash(w http.ResponseWriter, r *http.Request) []domain.Notice {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})

	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var notices []domain.Notice
	if err := json.Unmarshal(b, &notices); err != nil {
		return nil
	}
	return notices
}
