package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/dto"
	httperrors "github.com/joaobatista235/know-your-fan/internal/transport/http/errors"
)

type PurchaseHandler struct {
	fans   *fanssvc.Service
	logger *zap.Logger
}

func NewPurchaseHandler(fans *fanssvc.Service, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{fans: fans, logger: logger}
}

func (h *PurchaseHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	in := fanssvc.PurchaseInput{Amount: req.Amount, Item: req.Item}
	if raw := strings.TrimSpace(req.PurchasedAt); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "invalid purchased_at")
			return
		}
		at = at.UTC()
		in.PurchasedAt = &at
	}

	purchase, err := h.fans.AddPurchase(r.Context(), identity.UserID, in)
	if err != nil {
		handleFanError(w, err, "add purchase", h.logger)
		return
	}
	httperrors.Write(w, http.StatusCreated, purchaseResponse(purchase))
}
