package quizzes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"doclearn-backend/internal/shared/server/middleware"
	"doclearn-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches quiz routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/:id/quiz", h.get)
	rg.POST("/documents/:id/quiz/attempt", h.startAttempt)
	rg.GET("/documents/:id/quiz/attempt", h.attemptState)
	rg.POST("/documents/:id/quiz/attempt/answer", h.selectAnswer)
	rg.POST("/documents/:id/quiz/attempt/advance", h.advance)
	rg.POST("/documents/:id/quiz/attempt/retreat", h.retreat)
	rg.POST("/documents/:id/quiz/attempt/reset", h.reset)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	quiz, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}

	questions := make([]QuestionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, toQuestionView(q))
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"quizId":     quiz.ID,
		"documentId": quiz.DocumentID,
		"questions":  questions,
	})
}

func (h *Handler) startAttempt(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sess, err := h.Svc.StartAttempt(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toAttemptState(sess))
}

func (h *Handler) attemptState(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sess, err := h.Svc.Attempt(userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toAttemptState(sess))
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (h *Handler) selectAnswer(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	sess, err := h.Svc.Attempt(userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}

	sess.SelectAnswer(req.Answer)
	respond.JSON(c, http.StatusOK, toAttemptState(sess))
}

func (h *Handler) advance(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sess, err := h.Svc.Attempt(userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}

	if err := sess.Advance(); err != nil {
		respondQuizError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toAttemptState(sess))
}

func (h *Handler) retreat(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sess, err := h.Svc.Attempt(userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}

	if err := sess.Retreat(); err != nil {
		respondQuizError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toAttemptState(sess))
}

func (h *Handler) reset(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sess, err := h.Svc.Attempt(userID, c.Param("id"))
	if err != nil {
		respondQuizError(c, err)
		return
	}

	sess.Reset()
	respond.JSON(c, http.StatusOK, toAttemptState(sess))
}

func respondQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "quiz not found", nil)
	case errors.Is(err, ErrNoActiveAttempt):
		respond.Error(c, http.StatusNotFound, "no_active_attempt", "start an attempt first", nil)
	case errors.Is(err, ErrAnswerRequired):
		respond.Error(c, http.StatusBadRequest, "answer_required", "an answer is required to continue", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "quiz operation failed", nil)
	}
}
