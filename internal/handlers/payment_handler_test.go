package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/internal/validator"
	"gebeya_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentService struct {
	webhookResp *dto.PaymentStatusResponse
	webhookErr  error

	gotBody      []byte
	gotSignature string
	gotPayload   *dto.WebhookPayload
}

func (f *fakePaymentService) InitializePayment(ctx context.Context, userID string, req *dto.InitializePaymentRequest) (*dto.PaymentStatusResponse, error) {
	return nil, nil
}

func (f *fakePaymentService) ProcessWebhook(ctx context.Context, rawBody []byte, signature string, payload *dto.WebhookPayload) (*dto.PaymentStatusResponse, error) {
	f.gotBody = rawBody
	f.gotSignature = signature
	f.gotPayload = payload
	if f.webhookErr != nil {
		return nil, f.webhookErr
	}
	return f.webhookResp, nil
}

func (f *fakePaymentService) VerifyPayment(ctx context.Context, txRef string) (*dto.PaymentStatusResponse, error) {
	return nil, nil
}

func (f *fakePaymentService) GetPaymentHistory(userID string, limit int) ([]dto.PaymentHistoryItem, error) {
	return nil, nil
}

func newWebhookRouter(svc *fakePaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewPaymentHandler(NewBaseHandler(validator.New()), svc)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router
}

func TestWebhook(t *testing.T) {
	body := []byte(`{"tx_ref":"tx-1","status":"success","reference":"ref-1"}`)

	t.Run("delivers raw body and signature header to the service", func(t *testing.T) {
		svc := &fakePaymentService{
			webhookResp: &dto.PaymentStatusResponse{TxRef: "tx-1", Status: models.PaymentStatusCompleted},
		}
		router := newWebhookRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set("Chapa-Signature", "abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, body, svc.gotBody)
		assert.Equal(t, "abc123", svc.gotSignature)
		require.NotNil(t, svc.gotPayload)
		assert.Equal(t, "tx-1", svc.gotPayload.TxRef)
		assert.Contains(t, w.Body.String(), `"tx_ref":"tx-1"`)
	})

	t.Run("alternate signature header", func(t *testing.T) {
		svc := &fakePaymentService{
			webhookResp: &dto.PaymentStatusResponse{TxRef: "tx-1", Status: models.PaymentStatusCompleted},
		}
		router := newWebhookRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set("x-chapa-signature", "alt456")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alt456", svc.gotSignature)
	})

	t.Run("rejected signature returns 401", func(t *testing.T) {
		svc := &fakePaymentService{webhookErr: apperrors.ErrInvalidSignature}
		router := newWebhookRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set("Chapa-Signature", "bogus")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		svc := &fakePaymentService{}
		router := newWebhookRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, svc.gotPayload)
	})

	t.Run("missing tx_ref returns 400", func(t *testing.T) {
		svc := &fakePaymentService{}
		router := newWebhookRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader([]byte(`{"status":"success"}`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, svc.gotPayload)
	})

	t.Run("webhook does not require authentication", func(t *testing.T) {
		svc := &fakePaymentService{
			webhookResp: &dto.PaymentStatusResponse{TxRef: "tx-1", Status: models.PaymentStatusCompleted},
		}
		router := newWebhookRouter(svc)

		// No Authorization header at all.
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
