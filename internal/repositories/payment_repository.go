package repositories

import (
	"errors"
	"time"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentNotFound        = errors.New("payment transaction not found")
	ErrDuplicateReference     = errors.New("transaction reference already exists")
	ErrTransactionNotComplete = errors.New("transaction is not completed")
)

type PaymentRepository interface {
	CreateTransaction(tx *models.PaymentTransaction) error
	FindByTxRef(txRef string) (*models.PaymentTransaction, error)
	UpdateStatus(txRef string, status models.PaymentStatus, gatewayRef, errorMessage string) error
	FindTransactionsByUser(userID string, limit int) ([]models.PaymentTransaction, error)
	GrantSubscription(txRef string) (*GrantResult, error)
}

// GrantResult reports what a grant attempt did.
type GrantResult struct {
	AlreadyGranted bool
	PlanName       string
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

// CreateTransaction inserts a pending ledger row. The tx_ref is unique
// for all time; a collision with any earlier attempt is rejected.
func (r *PaymentRepositoryImpl) CreateTransaction(tx *models.PaymentTransaction) error {
	var count int64
	if err := r.db.Model(&models.PaymentTransaction{}).
		Where("tx_ref = ?", tx.TxRef).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateReference
	}

	tx.Status = models.PaymentStatusPending
	if err := r.db.Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByTxRef(txRef string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.First(&tx, "tx_ref = ?", txRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// UpdateStatus overwrites the resolution fields unconditionally; a later
// webhook delivery wins over an earlier one. completed_at is only set
// when the transaction completed.
func (r *PaymentRepositoryImpl) UpdateStatus(txRef string, status models.PaymentStatus, gatewayRef, errorMessage string) error {
	var completedAt *time.Time
	if status == models.PaymentStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	result := r.db.Model(&models.PaymentTransaction{}).Where("tx_ref = ?", txRef).
		Updates(map[string]interface{}{
			"status":          status,
			"chapa_reference": gatewayRef,
			"error_message":   errorMessage,
			"completed_at":    completedAt,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindTransactionsByUser(userID string, limit int) ([]models.PaymentTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	var txs []models.PaymentTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&txs).Error
	return txs, err
}

// GrantSubscription applies the plan a completed transaction paid for.
// The user row is locked for the duration of the transaction so two
// concurrent grants for the same user serialize; the second one sees the
// plan already set and becomes a no-op. Any error rolls everything back,
// which keeps the operation safe to retry.
func (r *PaymentRepositoryImpl) GrantSubscription(txRef string) (*GrantResult, error) {
	var result GrantResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var payment models.PaymentTransaction
		if err := tx.First(&payment, "tx_ref = ?", txRef).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status != models.PaymentStatusCompleted {
			return ErrTransactionNotComplete
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", payment.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		result.PlanName = payment.PlanName

		if user.SubscriptionPlan == payment.PlanName {
			result.AlreadyGranted = true
			return nil
		}

		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"subscription_plan": payment.PlanName,
				"updated_at":        time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
