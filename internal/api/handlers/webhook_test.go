package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orderhub/internal/domain/order"
	"orderhub/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIngestor is a hand-rolled pipeline stand-in recording the last body per
// platform.
type fakeIngestor struct {
	receipt  pipeline.Receipt
	err      error
	lastBody []byte
}

func (f *fakeIngestor) HandleUberEats(_ context.Context, body []byte) (pipeline.Receipt, error) {
	f.lastBody = body
	return f.receipt, f.err
}

func (f *fakeIngestor) HandleRappi(_ context.Context, body []byte) (pipeline.Receipt, error) {
	f.lastBody = body
	return f.receipt, f.err
}

func (f *fakeIngestor) HandleDidiFood(_ context.Context, body []byte) (pipeline.Receipt, error) {
	f.lastBody = body
	return f.receipt, f.err
}

func webhookEngine(ingestor Ingestor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	h := NewWebhookHandler(ingestor)
	engine.POST("/webhook/uber-eats", h.UberEats)
	engine.POST("/webhook/rappi", h.Rappi)
	engine.POST("/webhook/didi-food", h.DidiFood)

	return engine
}

func postWebhook(t *testing.T, engine *gin.Engine, path, body string) (int, webhookResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	var resp webhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return rec.Code, resp
}

func TestWebhookHandler_Success(t *testing.T) {
	testCases := []struct {
		path            string
		platform        order.Platform
		expectedMessage string
	}{
		{"/webhook/uber-eats", order.PlatformUberEats, "Uber Eats order processed"},
		{"/webhook/rappi", order.PlatformRappi, "Rappi order processed"},
		{"/webhook/didi-food", order.PlatformDidiFood, "Didi Food order processed"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.platform), func(t *testing.T) {
			ingestor := &fakeIngestor{
				receipt: pipeline.Receipt{Outcome: pipeline.OutcomeStored, RecordID: 7, Platform: tc.platform},
			}
			engine := webhookEngine(ingestor)

			code, resp := postWebhook(t, engine, tc.path, `{"some":"payload"}`)

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "success", resp.Status)
			assert.Equal(t, tc.expectedMessage, resp.Message)
			assert.JSONEq(t, `{"some":"payload"}`, string(ingestor.lastBody))
		})
	}
}

func TestWebhookHandler_Duplicate(t *testing.T) {
	ingestor := &fakeIngestor{
		receipt: pipeline.Receipt{Outcome: pipeline.OutcomeDuplicate, Platform: order.PlatformRappi},
	}
	engine := webhookEngine(ingestor)

	code, resp := postWebhook(t, engine, "/webhook/rappi", `{"code":"rappi-55","total":120.5}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "duplicate", resp.Status)
	assert.Equal(t, "Rappi order already processed", resp.Message)
}

func TestWebhookHandler_Errors(t *testing.T) {
	t.Run("validation failure is reported in the body, not the status code", func(t *testing.T) {
		ingestor := &fakeIngestor{
			err: fmt.Errorf("%w: Invalid Rappi order structure: missing code or total", order.ErrInvalidOrder),
		}
		engine := webhookEngine(ingestor)

		code, resp := postWebhook(t, engine, "/webhook/rappi", `{}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Message, "Invalid Rappi order structure: missing code or total")
	})

	t.Run("pipeline failure is reported verbatim", func(t *testing.T) {
		ingestor := &fakeIngestor{err: errors.New("acquire token: authentication with Uber Eats failed")}
		engine := webhookEngine(ingestor)

		code, resp := postWebhook(t, engine, "/webhook/uber-eats", `{"event_type":"orders.notification"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Message, "authentication with Uber Eats failed")
	})
}
