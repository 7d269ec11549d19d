package dto

import (
	"time"

	"gebeya_backend/internal/models"
)

type InitializePaymentRequest struct {
	PlanName string  `json:"plan_name" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	TxRef    string  `json:"tx_ref" binding:"required"`
}

// WebhookPayload is the body Chapa posts on payment events.
type WebhookPayload struct {
	TxRef     string `json:"tx_ref"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

type PaymentStatusResponse struct {
	TxRef          string               `json:"tx_ref"`
	Status         models.PaymentStatus `json:"status"`
	PlanName       string               `json:"plan_name,omitempty"`
	AlreadyGranted bool                 `json:"already_granted,omitempty"`
}

type PaymentHistoryItem struct {
	ID          string               `json:"id"`
	TxRef       string               `json:"tx_ref"`
	PlanName    string               `json:"plan_name"`
	Amount      float64              `json:"amount"`
	Currency    string               `json:"currency"`
	Status      models.PaymentStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

func PaymentHistoryFromModels(txs []models.PaymentTransaction) []PaymentHistoryItem {
	items := make([]PaymentHistoryItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, PaymentHistoryItem{
			ID:          tx.ID,
			TxRef:       tx.TxRef,
			PlanName:    tx.PlanName,
			Amount:      tx.Amount,
			Currency:    tx.Currency,
			Status:      tx.Status,
			CreatedAt:   tx.CreatedAt,
			CompletedAt: tx.CompletedAt,
		})
	}
	return items
}
