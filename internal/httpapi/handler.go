// Package httpapi exposes the judge service over HTTP via gin: a health
// check, a single-shot judge endpoint, and a sandbox pool status endpoint.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pecan/internal/judge"
)

// Runner is the subset of Service the HTTP facade depends on.
type Runner interface {
	Run(ctx context.Context, req judge.Request) (judge.Response, error)
	AvailableSandboxesCount() int
	IdleSandboxesCount() int
	RunningSandboxesCount() int
	ErrorSandboxesCount() int
}

// Handler holds the dependencies shared across HTTP handlers.
type Handler struct {
	runner Runner
}

// NewHandler builds a Handler backed by runner.
func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) judgeSingle(c *gin.Context) {
	var req JudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.runner.Run(c.Request.Context(), judge.Request{
		Language:       req.Language,
		Code:           req.Code,
		Stdin:          req.Stdin,
		ExpectedStdout: req.DesiredStdout,
		TimeLimitS:     req.TimeLimit,
		MemoryLimitKB:  req.MemoryLimit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, JudgeResponse{
		Code:   resp.Verdict.StatusCode(),
		Status: resp.Verdict.String(),
		Stdout: resp.Stdout,
		Stderr: resp.Stderr,
		Time:   resp.TimeS,
		Memory: resp.MemoryKB,
	})
}

func (h *Handler) sandboxStatus(c *gin.Context) {
	c.JSON(http.StatusOK, SandboxStatusResponse{
		AvailableSandboxes: h.runner.AvailableSandboxesCount(),
		IdleSandboxes:      h.runner.IdleSandboxesCount(),
		RunningSandboxes:   h.runner.RunningSandboxesCount(),
		ErrorSandboxes:     h.runner.ErrorSandboxesCount(),
	})
}

func health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
