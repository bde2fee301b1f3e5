package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creator-store-check/internal/history"
	"creator-store-check/internal/runner"
)

// Runner is the part of runner.Runner the handlers use.
type Runner interface {
	Run(ctx context.Context, opts runner.Options) (*runner.Result, error)
	Latest() *runner.Result
}

// RunRequest is the optional body of POST /run.
type RunRequest struct {
	Markdown bool `json:"markdown"`
	// ComparePrevious diffs the new run against the latest one.
	ComparePrevious bool `json:"compare_previous"`
}

type Handler struct {
	runner     Runner
	historyDir string
	log        *zap.Logger
}

func NewHandler(r Runner, historyDir string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{runner: r, historyDir: historyDir, log: log}
}

// Report returns the latest report.
func (h *Handler) Report(c *gin.Context) {
	res := h.runner.Latest()
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run yet"})
		return
	}
	c.JSON(http.StatusOK, res.Report)
}

// History returns the recorded run index.
func (h *Handler) History(c *gin.Context) {
	idx, err := history.Load(h.historyDir)
	if err != nil {
		h.log.Warn("load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, idx)
}

// Run triggers a run and returns its summary and report.
func (h *Handler) Run(c *gin.Context) {
	var req RunRequest
	if c.Request.ContentLength != 0 {
		// Chunked requests report -1 and may still carry no body.
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	opts := runner.Options{Markdown: req.Markdown}
	if req.ComparePrevious {
		if prev := h.runner.Latest(); prev != nil {
			opts.Compare = prev.JSONPath
		}
	}

	res, err := h.runner.Run(c.Request.Context(), opts)
	if err != nil {
		h.log.Error("run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"summary": runner.CISummary(res, res.Report.EndedAt),
		"report":  res.Report,
	})
}
