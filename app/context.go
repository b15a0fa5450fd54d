package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/recipehub/internal/userservice"
)

type contextKey string

const (
	userContextKey        = contextKey("user")
	authFailureContextKey = contextKey("auth_failure")
)

func (app *application) createUserContext(r *http.Request, user *userservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(userContextKey).(*userservice.User)
	if !ok {
		return &userservice.AnonymousUser
	}
	return user
}

// createAuthFailureContext records why a presented session could not be used.
func (app *application) createAuthFailureContext(r *http.Request, reason string) *http.Request {
	ctx := context.WithValue(r.Context(), authFailureContextKey, reason)
	return r.WithContext(ctx)
}

func (app *application) getAuthFailureContext(r *http.Request) string {
	reason, _ := r.Context().Value(authFailureContextKey).(string)
	return reason
}
