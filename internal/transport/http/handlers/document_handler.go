package handlers

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/joaobatista235/know-your-fan/internal/domain/enums"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	httperrors "github.com/joaobatista235/know-your-fan/internal/transport/http/errors"
)

const maxDocumentBytes = 10 << 20

type DocumentHandler struct {
	fans   *fanssvc.Service
	logger *zap.Logger
}

func NewDocumentHandler(fans *fanssvc.Service, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{fans: fans, logger: logger}
}

// Upload accepts a multipart form with a "file" part plus doc_type and
// doc_number fields, stores the file and runs verification.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart form")
		return
	}

	docType, ok := enums.ParseDocumentType(r.FormValue("doc_type"))
	if !ok {
		writeBadRequest(w, "INVALID_REQUEST", "unknown doc_type")
		return
	}
	number := strings.TrimSpace(r.FormValue("doc_number"))
	if number == "" {
		writeBadRequest(w, "INVALID_REQUEST", "doc_number is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes+1))
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "failed to read file")
		return
	}
	if len(data) == 0 {
		writeBadRequest(w, "INVALID_REQUEST", "file is empty")
		return
	}
	if len(data) > maxDocumentBytes {
		writeBadRequest(w, "FILE_TOO_LARGE", "file exceeds the 10MB limit")
		return
	}

	doc, err := h.fans.UploadDocument(r.Context(), identity.UserID, docType, number, data, header.Header.Get("Content-Type"))
	if err != nil {
		handleFanError(w, err, "upload document", h.logger)
		return
	}
	httperrors.Write(w, http.StatusCreated, documentResponse(doc))
}
