package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/dto"
	httperrors "github.com/joaobatista235/know-your-fan/internal/transport/http/errors"
)

type EsportsHandler struct {
	fans   *fanssvc.Service
	logger *zap.Logger
}

func NewEsportsHandler(fans *fanssvc.Service, logger *zap.Logger) *EsportsHandler {
	return &EsportsHandler{fans: fans, logger: logger}
}

func (h *EsportsHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.EsportsProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	profile, err := h.fans.AddEsportsProfile(r.Context(), identity.UserID, req.Platform, req.ProfileURL, req.Username)
	if err != nil {
		handleFanError(w, err, "add esports profile", h.logger)
		return
	}
	httperrors.Write(w, http.StatusCreated, esportsProfileResponse(profile))
}

func (h *EsportsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	platform := chi.URLParam(r, "platform")
	verified, err := h.fans.VerifyEsportsProfile(r.Context(), identity.UserID, platform)
	if err != nil {
		handleFanError(w, err, "verify esports profile", h.logger)
		return
	}

	status := enums.VerificationStatusRejected
	if verified {
		status = enums.VerificationStatusVerified
	}
	httperrors.Write(w, http.StatusOK, dto.EsportsVerifyResponse{
		Platform: platform,
		Verified: verified,
		Status:   string(status),
	})
}
