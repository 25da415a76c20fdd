// Package api exposes the translation pipeline and job store over HTTP
// using gin, with swagger documentation served alongside it.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"doctranslate/internal/auth"
	"doctranslate/internal/config"
	"doctranslate/internal/jobs"
	"doctranslate/internal/markup"
	"doctranslate/pkg/logger"
)

// Handler wires the HTTP surface to the translation pipeline, job store
// and the auth issuer that POST /api/v1/login exchanges API keys for
// bearer tokens against.
type Handler struct {
	pipeline *markup.Pipeline
	store    *jobs.Store
	issuer   *auth.Issuer
	auth     config.AuthConfig
}

// NewHandler builds a Handler.
func NewHandler(pipeline *markup.Pipeline, store *jobs.Store, issuer *auth.Issuer, authCfg config.AuthConfig) *Handler {
	return &Handler{pipeline: pipeline, store: store, issuer: issuer, auth: authCfg}
}

type loginRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// Login exchanges the seeded API key for a bearer token accepted by the
// auth middleware on every /api/v1 route below it.
//
// @Summary      Exchange an API key for a bearer token
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "api key"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /api/v1/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issuer.Authenticate(req.APIKey, h.auth.APIKeyHash, h.auth.TokenSubject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HealthCheck reports liveness.
//
// @Summary      Health check
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type translateRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Translate runs the pipeline synchronously and returns the translated,
// markup-reinserted text.
//
// @Summary      Translate markup-bearing text synchronously
// @Accept       json
// @Produce      json
// @Param        request body translateRequest true "source text"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /api/v1/translate [post]
func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.pipeline.Translate(c.Request.Context(), req.Text)
	if err != nil {
		logger.Error("synchronous translate failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": out})
}

// CreateJob enqueues an asynchronous translation job and runs it in the
// background, returning immediately with the job id for polling.
//
// @Summary      Submit an asynchronous translation job
// @Accept       json
// @Produce      json
// @Param        request body translateRequest true "source text"
// @Success      202 {object} jobs.Job
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /api/v1/jobs [post]
func (h *Handler) CreateJob(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.store.Create(req.SourceLang, req.TargetLang, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go jobs.Run(context.Background(), h.store, h.pipeline, job)

	c.JSON(http.StatusAccepted, job)
}

// GetJob reports a job's current status and, once done, its translated
// text.
//
// @Summary      Fetch a translation job
// @Produce      json
// @Param        id path string true "job id"
// @Success      200 {object} jobs.Job
// @Failure      404 {object} map[string]string
// @Router       /api/v1/jobs/{id} [get]
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}
