package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/services/verification"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/dto"
	httperrors "github.com/joaobatista235/know-your-fan/internal/transport/http/errors"
)

type FanHandler struct {
	fans   *fanssvc.Service
	logger *zap.Logger
}

func NewFanHandler(fans *fanssvc.Service, logger *zap.Logger) *FanHandler {
	return &FanHandler{fans: fans, logger: logger}
}

func (h *FanHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.CreateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	birth, err := parseDate(req.BirthDate)
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid birth_date")
		return
	}

	fan, err := h.fans.CreateProfile(r.Context(), identity.UserID, fanssvc.ProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		BirthDate:       birth,
		CPF:             req.CPF,
		Address:         addressFromDTO(req.Address),
		ProfileImageURL: req.ProfileImageURL,
		FavoriteGames:   req.FavoriteGames,
		FavoriteTeams:   req.FavoriteTeams,
	})
	if err != nil {
		h.handleError(w, err, "create profile")
		return
	}
	httperrors.Write(w, http.StatusCreated, fanResponse(fan))
}

func (h *FanHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	fan, err := h.fans.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.handleError(w, err, "get profile")
		return
	}
	httperrors.Write(w, http.StatusOK, fanResponse(fan))
}

func (h *FanHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	in := fanssvc.UpdateInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		CPF:             req.CPF,
		ProfileImageURL: req.ProfileImageURL,
		FavoriteGames:   req.FavoriteGames,
		FavoriteTeams:   req.FavoriteTeams,
	}
	if req.BirthDate != nil {
		birth, err := parseDate(*req.BirthDate)
		if err != nil || birth == nil {
			writeBadRequest(w, "INVALID_REQUEST", "invalid birth_date")
			return
		}
		in.BirthDate = birth
	}
	if req.Address != nil {
		in.Address = addressFromDTO(req.Address)
	}

	fan, err := h.fans.UpdateProfile(r.Context(), identity.UserID, in)
	if err != nil {
		h.handleError(w, err, "update profile")
		return
	}
	httperrors.Write(w, http.StatusOK, fanResponse(fan))
}

func (h *FanHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.fans.DeleteProfile(r.Context(), identity.UserID); err != nil {
		h.handleError(w, err, "delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FanHandler) Completeness(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	score, err := h.fans.Completeness(r.Context(), identity.UserID)
	if err != nil {
		h.handleError(w, err, "completeness")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.CompletenessResponse{ProfileCompleteness: score})
}

func (h *FanHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	stats, err := h.fans.Analytics(r.Context(), identity.UserID)
	if err != nil {
		h.handleError(w, err, "analytics")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.AnalyticsResponse{
		ProfileCompleteness:     stats.ProfileCompleteness,
		VerifiedDocuments:       stats.VerifiedDocuments,
		ConnectedPlatforms:      stats.ConnectedPlatforms,
		VerifiedEsportsProfiles: stats.VerifiedEsportsProfiles,
		TotalPurchases:          stats.TotalPurchases,
		TotalSpent:              stats.TotalSpent,
		TotalEvents:             stats.TotalEvents,
		FavoriteGames:           stats.FavoriteGames,
		FavoriteTeams:           stats.FavoriteTeams,
	})
}

func (h *FanHandler) handleError(w http.ResponseWriter, err error, op string) {
	handleFanError(w, err, op, h.logger)
}

// handleFanError maps fan service errors to API responses. Shared by every
// handler that fronts the fan service.
func handleFanError(w http.ResponseWriter, err error, op string, logger *zap.Logger) {
	switch {
	case errors.Is(err, fanssvc.ErrValidation):
		writeBadRequest(w, "INVALID_REQUEST", err.Error())
	case errors.Is(err, fanssvc.ErrProfileNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "fan profile not found")
	case errors.Is(err, fanssvc.ErrProfileExists):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{
			Code:    "PROFILE_EXISTS",
			Message: "fan profile already exists",
		})
	case errors.Is(err, fanssvc.ErrNotConnected):
		writeBadRequest(w, "SOCIAL_NOT_CONNECTED", "social account is not connected")
	case errors.Is(err, verification.ErrOracle):
		logger.Error("verification oracle failed", zap.String("op", op), zap.Error(err))
		httperrors.Write(w, http.StatusBadGateway, httperrors.APIError{
			Code:    "VERIFICATION_UNAVAILABLE",
			Message: "verification is temporarily unavailable",
		})
	default:
		logger.Error("fan operation failed", zap.String("op", op), zap.Error(err))
		writeInternal(w, "INTERNAL", "internal error")
	}
}
