package generation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doclearn-backend/internal/documents"
	"doclearn-backend/internal/queue"
	"doclearn-backend/internal/shared/server/middleware"
	"doclearn-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the generation service. When a queue client
// is configured, generation is handed off to a worker; otherwise it runs
// inline in the request.
type Handler struct {
	Svc   *Service
	Queue queue.Client
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, q queue.Client) *Handler {
	return &Handler{Svc: svc, Queue: q}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/generate", h.generate)
	rg.GET("/documents/:id/generate/status", h.status)
}

func (h *Handler) status(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	status, err := h.Svc.Status(c.Request.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load generation status", nil)
		return
	}
	respond.JSON(c, http.StatusOK, status)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	if h.Queue != nil {
		msg := queue.Message{
			DocumentID: documentID,
			UserID:     userID,
			RequestID:  uuid.NewString(),
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		if err := h.Queue.Send(c.Request.Context(), msg); err != nil {
			respond.Error(c, http.StatusInternalServerError, "queue_error", "failed to enqueue generation", nil)
			return
		}
		respond.JSON(c, http.StatusAccepted, gin.H{
			"status":     "queued",
			"documentId": documentID,
			"requestId":  msg.RequestID,
		})
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), userID, documentID)
	if err != nil {
		var genErr *GenerationError
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInFlight):
			respond.Error(c, http.StatusConflict, "generation_in_progress", "a generation is already running for this document", nil)
		case errors.As(err, &genErr):
			respond.Error(c, http.StatusBadGateway, "generation_error", genErr.Message, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "generation failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"summary":  result.Summary,
		"quizSize": result.QuizSize,
	})
}
