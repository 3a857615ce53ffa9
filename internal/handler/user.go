package handler

import (
	"context"
	"net/http"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
)

// InventoryProvisioner creates a user's inventory on request
type InventoryProvisioner interface {
	Provision(ctx context.Context, userID string) (*domain.Inventory, bool, error)
}

// ProvisionResponse reports the user's inventory
type ProvisionResponse struct {
	Message   string           `json:"message"`
	Inventory domain.Inventory `json:"inventory"`
}

// HandleProvisionUser makes sure the current user has an inventory.
// Returns 201 when one was created and 200 when it already existed.
// POST /api/v1/users/provision
func HandleProvisionUser(p InventoryProvisioner, ids identity.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r, ids)
		if !ok {
			return
		}

		inv, created, err := p.Provision(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Provision user", err)
			return
		}

		if created {
			respondJSON(w, http.StatusCreated, ProvisionResponse{Message: MsgInventoryReady, Inventory: *inv})
			return
		}
		respondJSON(w, http.StatusOK, ProvisionResponse{Message: MsgInventoryExists, Inventory: *inv})
	}
}
