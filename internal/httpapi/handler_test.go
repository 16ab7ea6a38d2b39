package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pecan/internal/judge"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRunner struct {
	resp      judge.Response
	err       error
	available int
	idle      int
	running   int
	errored   int
}

func (s *stubRunner) Run(ctx context.Context, req judge.Request) (judge.Response, error) {
	return s.resp, s.err
}

func (s *stubRunner) AvailableSandboxesCount() int { return s.available }
func (s *stubRunner) IdleSandboxesCount() int       { return s.idle }
func (s *stubRunner) RunningSandboxesCount() int    { return s.running }
func (s *stubRunner) ErrorSandboxesCount() int      { return s.errored }

func doRequest(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJudgeSingleAccepted(t *testing.T) {
	runner := &stubRunner{resp: judge.Response{Verdict: judge.Accepted, Stdout: "hi\n", TimeS: 0.1, MemoryKB: 1024}}
	h := NewHandler(runner)
	r := gin.New()
	r.POST("/v1/judge/judge-single", h.judgeSingle)

	body, _ := json.Marshal(JudgeRequest{Code: "print('hi')", Language: "python", DesiredStdout: "hi"})
	w := doRequest(r, http.MethodPost, "/v1/judge/judge-single", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp JudgeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, 0, resp.Code)
}

func TestJudgeSingleBindErrorReturns500(t *testing.T) {
	runner := &stubRunner{}
	h := NewHandler(runner)
	r := gin.New()
	r.POST("/v1/judge/judge-single", h.judgeSingle)

	w := doRequest(r, http.MethodPost, "/v1/judge/judge-single", []byte("not json"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestJudgeSingleExecutorErrorReturns500(t *testing.T) {
	runner := &stubRunner{err: errors.New("boom")}
	h := NewHandler(runner)
	r := gin.New()
	r.POST("/v1/judge/judge-single", h.judgeSingle)

	body, _ := json.Marshal(JudgeRequest{Code: "x", Language: "python"})
	w := doRequest(r, http.MethodPost, "/v1/judge/judge-single", body)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "boom", resp.Error)
}

func TestSandboxStatusReportsCounts(t *testing.T) {
	runner := &stubRunner{available: 5, idle: 3, running: 2, errored: 1}
	h := NewHandler(runner)
	r := gin.New()
	r.GET("/v1/manager/sandbox-status", h.sandboxStatus)

	w := doRequest(r, http.MethodGet, "/v1/manager/sandbox-status", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SandboxStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.AvailableSandboxes)
	assert.Equal(t, 3, resp.IdleSandboxes)
	assert.Equal(t, 2, resp.RunningSandboxes)
	assert.Equal(t, 1, resp.ErrorSandboxes)
}

func TestHealthReturnsOK(t *testing.T) {
	r := gin.New()
	r.GET("/v1/health", health)

	w := doRequest(r, http.MethodGet, "/v1/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
