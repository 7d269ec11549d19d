package handlers

import (
	"encoding/json"
	"net/http"

	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/middleware"
	"gebeya_backend/internal/pkg/chapa"
	"gebeya_backend/internal/services"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	// The webhook is called by the gateway, not by a logged-in user.
	// Authenticity comes from the body signature, not a bearer token.
	r.POST("/payments/webhook", h.Webhook)

	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/initialize", h.Initialize)
		payments.POST("/verify/:txRef", h.Verify)
		payments.GET("/history", h.History)
	}
}

func (h *PaymentHandler) Initialize(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InitializePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.InitializePayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Webhook verifies the raw request body against the signature header, so
// the body must be read before any binding touches it.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	ctx := c.Request.Context()

	rawBody, err := c.GetRawData()
	if err != nil {
		logger.CtxWithError(ctx, "failed to read webhook body", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unable to read request body"))
		return
	}

	var payload dto.WebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		logger.CtxWithError(ctx, "failed to decode webhook payload", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid webhook payload"))
		return
	}
	if payload.TxRef == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing tx_ref in webhook payload"))
		return
	}

	signature := chapa.SignatureFromHeader(c.Request.Header)

	resp, err := h.paymentService.ProcessWebhook(ctx, rawBody, signature, &payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	txRef := c.Param("txRef")
	if txRef == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing transaction reference"))
		return
	}

	resp, err := h.paymentService.VerifyPayment(c.Request.Context(), txRef)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 20)

	history, err := h.paymentService.GetPaymentHistory(userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": history,
		"total":    len(history),
	})
}
