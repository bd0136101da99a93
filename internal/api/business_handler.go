package api

import (
	"net/http"

	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/service"
)

// BusinessHandler serves the authenticated user's own business.
type BusinessHandler struct {
	businesses service.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businesses service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// GetBusiness handles GET /business.
func (h *BusinessHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	business, err := h.businesses.GetBusiness(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Business retrieved", business)
}

// UpdateBusiness handles PUT and PATCH /business. Only supplied fields change.
func (h *BusinessHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	business, err := h.businesses.UpdateBusiness(r.Context(), userID, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Business updated", business)
}
