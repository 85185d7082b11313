package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thewspl/financialfreedommobile/config"
	"github.com/thewspl/financialfreedommobile/internal/auth"
	"github.com/thewspl/financialfreedommobile/internal/store"
)

type stubUploader struct{}

func (stubUploader) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	return "https://res.cloudinary.com/test/img.png", nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{"*"},
		},
		RateLimit: config.RateLimitConfig{Requests: 1000, Window: time.Minute},
	}
	return Setup(cfg, store.NewMemory(), stubUploader{}, auth.InsecureVerifier{})
}

type apiResponse struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, engine *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	var resp apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func postForm(t *testing.T, engine *gin.Engine, path, uid string, fields map[string]string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+uid)
	return do(t, engine, req)
}

func get(t *testing.T, engine *gin.Engine, path, uid string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+uid)
	return do(t, engine, req)
}

func TestHealthzIsPublic(t *testing.T) {
	engine := newTestEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec, _ := do(t, engine, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingAuthorizationHeader(t *testing.T) {
	engine := newTestEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	rec, resp := do(t, engine, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	engine := newTestEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	req.Header.Set("Authorization", "Token abc")
	rec, _ := do(t, engine, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWalletAndTransactionFlow(t *testing.T) {
	engine := newTestEngine(t)

	rec, resp := postForm(t, engine, "/api/v1/wallets", "u1", map[string]string{"name": "Savings"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	var wallet struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))
	require.NotEmpty(t, wallet.ID)

	rec, _ = postForm(t, engine, "/api/v1/transactions", "u1", map[string]string{
		"type": "income", "amount": "100", "walletId": wallet.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// over the balance
	rec, resp = postForm(t, engine, "/api/v1/transactions", "u1", map[string]string{
		"type": "expense", "amount": "150", "walletId": wallet.ID, "category": "groceries",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "selected wallet does not have enough balance", resp.Msg)

	rec, _ = postForm(t, engine, "/api/v1/transactions", "u1", map[string]string{
		"type": "expense", "amount": "40", "walletId": wallet.ID, "category": "groceries",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = get(t, engine, "/api/v1/wallets/"+wallet.ID, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))
	assert.Equal(t, 60.0, wallet.Amount)

	rec, resp = get(t, engine, "/api/v1/transactions?walletId="+wallet.ID, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var txns []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &txns))
	assert.Len(t, txns, 2)
}

func TestWalletNotVisibleToOtherUser(t *testing.T) {
	engine := newTestEngine(t)

	_, resp := postForm(t, engine, "/api/v1/wallets", "u1", map[string]string{"name": "Private"})
	var wallet struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))

	rec, _ := get(t, engine, "/api/v1/wallets/"+wallet.ID, "u2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTransactionRequiresWalletID(t *testing.T) {
	engine := newTestEngine(t)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/abc", nil)
	req.Header.Set("Authorization", "Bearer u1")
	rec, resp := do(t, engine, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "walletId is required", resp.Msg)
}

func TestDeleteWalletCascadesOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	_, resp := postForm(t, engine, "/api/v1/wallets", "u1", map[string]string{"name": "Doomed"})
	var wallet struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))

	rec, _ := postForm(t, engine, "/api/v1/transactions", "u1", map[string]string{
		"type": "income", "amount": "10", "walletId": wallet.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wallets/"+wallet.ID, nil)
	req.Header.Set("Authorization", "Bearer u1")
	rec, resp = do(t, engine, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = get(t, engine, "/api/v1/transactions", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var txns []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &txns))
	assert.Empty(t, txns)
}

func TestCategoriesEndpoint(t *testing.T) {
	engine := newTestEngine(t)
	rec, resp := get(t, engine, "/api/v1/categories", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &cats))
	assert.NotEmpty(t, cats)
}

func TestWeeklyStatsEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	_, resp := postForm(t, engine, "/api/v1/wallets", "u1", map[string]string{"name": "Main"})
	var wallet struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &wallet))
	rec, _ := postForm(t, engine, "/api/v1/transactions", "u1", map[string]string{
		"type": "income", "amount": "75", "walletId": wallet.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = get(t, engine, "/api/v1/stats/weekly", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Days []struct {
			Date   string  `json:"date"`
			Income float64 `json:"income"`
		} `json:"days"`
		Stats []json.RawMessage `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	require.Len(t, stats.Days, 7)
	assert.Len(t, stats.Stats, 14)
	assert.Equal(t, 75.0, stats.Days[6].Income)
}
