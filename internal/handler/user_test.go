package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
)

func TestHandleProvisionUser(t *testing.T) {
	inv := &domain.Inventory{ID: "inv-1", UserID: "alice"}

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockProvisioner)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Created",
			userID: "alice",
			setupMock: func(m *MockProvisioner) {
				m.On("Provision", mock.Anything, "alice").Return(inv, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   MsgInventoryReady,
		},
		{
			name:   "Already provisioned",
			userID: "alice",
			setupMock: func(m *MockProvisioner) {
				m.On("Provision", mock.Anything, "alice").Return(inv, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"inv-1"`,
		},
		{
			name:           "No user",
			setupMock:      func(m *MockProvisioner) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Store failure",
			userID: "alice",
			setupMock: func(m *MockProvisioner) {
				m.On("Provision", mock.Anything, "alice").Return(nil, false, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &MockProvisioner{}
			tt.setupMock(p)
			h := HandleProvisionUser(p, identity.ContextProvider{})

			req := httptest.NewRequest(http.MethodPost, "/users/provision", nil)
			if tt.userID != "" {
				req = req.WithContext(identity.WithUserID(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			p.AssertExpectations(t)
		})
	}
}
