package handlers

import (
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/dto"
	httperrors "github.com/joaobatista235/know-your-fan/internal/transport/http/errors"
)

type EventHandler struct {
	fans   *fanssvc.Service
	logger *zap.Logger
}

func NewEventHandler(fans *fanssvc.Service, logger *zap.Logger) *EventHandler {
	return &EventHandler{fans: fans, logger: logger}
}

func (h *EventHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.EventInterestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid date")
		return
	}

	event, err := h.fans.AddEventInterest(r.Context(), identity.UserID, fanssvc.EventInterestInput{
		Name:          req.Name,
		Date:          date,
		InterestLevel: req.InterestLevel,
	})
	if err != nil {
		handleFanError(w, err, "add event interest", h.logger)
		return
	}
	httperrors.Write(w, http.StatusCreated, eventInterestResponse(event))
}
