package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextProvider(t *testing.T) {
	var p Provider = ContextProvider{}

	_, err := p.CurrentUserID(context.Background())
	assert.ErrorIs(t, err, ErrNoUser)

	id, err := p.CurrentUserID(WithUserID(context.Background(), "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = p.CurrentUserID(WithUserID(context.Background(), ""))
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestNormalizeUserID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "user-1", want: "user-1"},
		{in: "  discord:42 ", want: "discord:42"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "bad\x01id", wantErr: true},
		{in: strings.Repeat("a", MaxUserIDLength+1), wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeUserID(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrNoUser, "input %q", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestMiddleware(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("header present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/decks", nil)
		req.Header.Set(HeaderUserID, " alice ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "alice", seen)
	})

	t.Run("header missing", func(t *testing.T) {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/api/v1/decks", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, seen)
	})
}
