package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studymind/studymind-backend/internal/http/response"
	"github.com/studymind/studymind-backend/internal/platform/apierr"
	"github.com/studymind/studymind-backend/internal/platform/ctxutil"
	"github.com/studymind/studymind-backend/internal/platform/logger"
	"github.com/studymind/studymind-backend/internal/services"
)

type DocumentHandler struct {
	log       *logger.Logger
	documents services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, documents services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:       log.With("handler", "DocumentHandler"),
		documents: documents,
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	docs, err := h.documents.List(c.Request.Context(), principal.Subject)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, docs)
}

func (h *DocumentHandler) GetDetail(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_document_id", nil)
		return
	}
	view, err := h.documents.GetDetail(c.Request.Context(), docID, principal.Subject)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_document_id", nil)
		return
	}
	if err := h.documents.Delete(c.Request.Context(), docID, principal.Subject); err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Document deleted successfully"})
}

func (h *DocumentHandler) respondServiceError(c *gin.Context, err error) {
	if ae, ok := apierr.As(err); ok {
		if ae.Status >= http.StatusInternalServerError {
			h.log.Error("document operation failed", "code", ae.Code, "error", ae.Err)
		}
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	h.log.Error("unexpected error", "error", err)
	response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
