package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctranslate/internal/auth"
	"doctranslate/internal/config"
	"doctranslate/internal/jobs"
	"doctranslate/internal/markup"
	"doctranslate/internal/translation"
)

// echoTranslator returns its input back unchanged as a single sentence,
// so a round trip through the pipeline is a no-op translation.
type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text string) ([]string, []string, error) {
	return []string{text}, []string{text}, nil
}

// identityAligner pairs each source token with the target token at the
// same index, valid here because echoTranslator makes src and tgt
// identical.
type identityAligner struct{}

func (identityAligner) Align(_ context.Context, srcBatch, tgtBatch [][]string) ([][][2]int, error) {
	out := make([][][2]int, len(srcBatch))
	for i := range srcBatch {
		n := len(srcBatch[i])
		pairs := make([][2]int, n)
		for j := 0; j < n; j++ {
			pairs[j] = [2]int{j, j}
		}
		out[i] = pairs
	}
	return out, nil
}

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	cfg := &config.Config{
		Logging: config.LoggingConfig{Level: "error"},
		Auth:    config.AuthConfig{JWTSecret: "test-secret", TokenSubject: "api-client"},
	}
	hash, err := auth.HashAPIKey("correct-key")
	require.NoError(t, err)
	cfg.Auth.APIKeyHash = hash

	store, err := jobs.Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)

	pipeline := markup.NewPipeline(echoTranslator{}, identityAligner{}, translation.RegexTokenizer{}, nil)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Hour)

	return SetupRouter(cfg, pipeline, store, issuer), "correct-key"
}

func TestLoginRejectsWrongKey(t *testing.T) {
	router, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"api_key": "wrong-key"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"text": "hello"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginThenTranslateRoundTrip(t *testing.T) {
	router, apiKey := newTestRouter(t)

	loginBody, _ := json.Marshal(map[string]string{"api_key": apiKey})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	token := loginResp["token"]
	require.NotEmpty(t, token)

	translateBody, _ := json.Marshal(map[string]string{"text": "hello world."})
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader(translateBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var translateResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &translateResp))
	assert.Equal(t, "hello world.", translateResp["text"])
}

func TestHealthzIsOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
