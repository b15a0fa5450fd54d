package main

import (
	"net/http"
	"time"
)

const sessionCookieName = "token"

func (app *application) sessionCookie(value string, maxAge int, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if app.config.isProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}

	return cookie
}

func (app *application) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, app.sessionCookie(token, int(app.config.JWTTTL.Seconds()), expires))
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, app.sessionCookie("", -1, time.Unix(0, 0)))
}
