// Package identity supplies the acting user's id to the services and
// provisions the per-user inventory. Authentication itself happens earlier,
// at the API key check.
package identity

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HeaderUserID carries the authenticated caller's user id
const HeaderUserID = "X-User-ID"

// MaxUserIDLength bounds the accepted user id
const MaxUserIDLength = 128

// ErrNoUser means the request carries no usable user id
var ErrNoUser = errors.New("no authenticated user")

// Provider reports who is making the current call
type Provider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

type ctxKey struct{}

// WithUserID returns a context carrying userID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the user id stored by WithUserID
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ContextProvider reads the user id placed in the context by Middleware
type ContextProvider struct{}

// CurrentUserID implements Provider
func (ContextProvider) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", ErrNoUser
	}
	return id, nil
}

var (
	idValidator = validator.New()
	userIDRules = "required,printascii,max=" + strconv.Itoa(MaxUserIDLength)
)

// NormalizeUserID trims id and checks it is a printable ASCII token of
// reasonable length
func NormalizeUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if err := idValidator.Var(id, userIDRules); err != nil {
		return "", ErrNoUser
	}
	return id, nil
}
