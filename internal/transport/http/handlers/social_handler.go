package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/dto"
	httperrors "github.com/joaobatista235/know-your-fan/internal/transport/http/errors"
)

type SocialHandler struct {
	fans   *fanssvc.Service
	logger *zap.Logger
}

func NewSocialHandler(fans *fanssvc.Service, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{fans: fans, logger: logger}
}

func (h *SocialHandler) Connect(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.SocialAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	account, err := h.fans.ConnectSocialAccount(r.Context(), identity.UserID, req.Platform, req.ProfileURL, req.Username)
	if err != nil {
		handleFanError(w, err, "connect social account", h.logger)
		return
	}
	httperrors.Write(w, http.StatusCreated, socialAccountResponse(account))
}

func (h *SocialHandler) Sync(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	platform := chi.URLParam(r, "platform")
	result, err := h.fans.SyncSocialAccount(r.Context(), identity.UserID, platform)
	if err != nil {
		handleFanError(w, err, "sync social account", h.logger)
		return
	}
	httperrors.Write(w, http.StatusOK, syncResponse(result))
}
