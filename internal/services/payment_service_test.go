package services

import (
	"context"
	"errors"
	"testing"

	"gebeya_backend/internal/config"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/pkg/chapa"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusCall struct {
	txRef        string
	status       models.PaymentStatus
	gatewayRef   string
	errorMessage string
}

type fakePaymentRepo struct {
	created      []*models.PaymentTransaction
	createErr    error
	transactions map[string]*models.PaymentTransaction
	statusCalls  []statusCall
	updateErr    error
	grantResult  *repositories.GrantResult
	grantErr     error
	grantCalls   int
}

func (f *fakePaymentRepo) CreateTransaction(tx *models.PaymentTransaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, tx)
	return nil
}

func (f *fakePaymentRepo) FindByTxRef(txRef string) (*models.PaymentTransaction, error) {
	tx, ok := f.transactions[txRef]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	return tx, nil
}

func (f *fakePaymentRepo) UpdateStatus(txRef string, status models.PaymentStatus, gatewayRef, errorMessage string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusCalls = append(f.statusCalls, statusCall{txRef, status, gatewayRef, errorMessage})
	return nil
}

func (f *fakePaymentRepo) FindTransactionsByUser(userID string, limit int) ([]models.PaymentTransaction, error) {
	var out []models.PaymentTransaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) GrantSubscription(txRef string) (*repositories.GrantResult, error) {
	f.grantCalls++
	if f.grantErr != nil {
		return nil, f.grantErr
	}
	if f.grantResult != nil {
		return f.grantResult, nil
	}
	return &repositories.GrantResult{PlanName: "premium"}, nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	users map[string]*models.User
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

type fakeSettingRepo struct {
	repositories.SettingRepository
	settings map[string]string
}

func (f *fakeSettingRepo) GetSetting(key string) (string, bool) {
	v, ok := f.settings[key]
	return v, ok && v != ""
}

type fakeNotificationRepo struct {
	repositories.NotificationRepository
	created []*models.Notification
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.created = append(f.created, n)
	return nil
}

type fakeVerifier struct {
	data      *chapa.VerifyData
	err       error
	verified  []string
	secretKey string
}

func (f *fakeVerifier) Verify(ctx context.Context, txRef string) (*chapa.VerifyData, error) {
	f.verified = append(f.verified, txRef)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type paymentFixture struct {
	service       PaymentService
	payments      *fakePaymentRepo
	users         *fakeUserRepo
	settings      *fakeSettingRepo
	notifications *fakeNotificationRepo
	verifier      *fakeVerifier
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	// Keep environment and config-file fallbacks out of the resolution order.
	t.Setenv(chapa.EnvSecretKey, "")
	t.Setenv(chapa.EnvWebhookSecret, "")
	prev := config.AppConfig
	config.AppConfig = &config.Config{}
	t.Cleanup(func() { config.AppConfig = prev })

	email := "abebe@example.com"
	f := &paymentFixture{
		payments: &fakePaymentRepo{transactions: map[string]*models.PaymentTransaction{}},
		users: &fakeUserRepo{users: map[string]*models.User{
			"user-1": {
				BaseModel: models.BaseModel{ID: "user-1"},
				FullName:  "Abebe Bikila",
				Email:     &email,
			},
		}},
		settings:      &fakeSettingRepo{settings: map[string]string{}},
		notifications: &fakeNotificationRepo{},
		verifier:      &fakeVerifier{},
	}

	factory := func(secretKey string) GatewayVerifier {
		f.verifier.secretKey = secretKey
		return f.verifier
	}
	f.service = NewPaymentService(f.payments, f.users, f.settings, f.notifications, factory)
	return f
}

func TestInitializePayment(t *testing.T) {
	t.Run("snapshots the customer from the stored user", func(t *testing.T) {
		f := newPaymentFixture(t)

		resp, err := f.service.InitializePayment(context.Background(), "user-1", &dto.InitializePaymentRequest{
			PlanName: "premium",
			Amount:   499.99,
			TxRef:    "tx-001",
		})
		require.NoError(t, err)

		assert.Equal(t, "tx-001", resp.TxRef)
		assert.Equal(t, models.PaymentStatusPending, resp.Status)

		require.Len(t, f.payments.created, 1)
		created := f.payments.created[0]
		assert.Equal(t, "user-1", created.UserID)
		assert.Equal(t, "premium", created.PlanName)
		assert.Equal(t, "ETB", created.Currency)
		assert.Equal(t, "abebe@example.com", created.Email)
		assert.Equal(t, "Abebe", created.FirstName)
		assert.Equal(t, "Bikila", created.LastName)
	})

	t.Run("rejects a duplicate reference", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.payments.createErr = repositories.ErrDuplicateReference

		_, err := f.service.InitializePayment(context.Background(), "user-1", &dto.InitializePaymentRequest{
			PlanName: "premium",
			Amount:   499.99,
			TxRef:    "tx-001",
		})
		assert.Equal(t, apperrors.ErrDuplicateReference, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.service.InitializePayment(context.Background(), "nobody", &dto.InitializePaymentRequest{
			PlanName: "premium",
			Amount:   499.99,
			TxRef:    "tx-002",
		})
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"two parts", "Abebe Bikila", "Abebe", "Bikila"},
		{"three parts", "Abebe Bikila Kebede", "Abebe", "Bikila Kebede"},
		{"single name", "Abebe", "Abebe", "User"},
		{"empty", "", "Customer", "User"},
		{"whitespace only", "   ", "Customer", "User"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := splitFullName(tc.in)
			assert.Equal(t, tc.first, first)
			assert.Equal(t, tc.last, last)
		})
	}
}

func TestProcessWebhook(t *testing.T) {
	payload := &dto.WebhookPayload{TxRef: "tx-100", Status: "success", Reference: "chapa-ref-1"}
	body := []byte(`{"tx_ref":"tx-100","status":"success","reference":"chapa-ref-1"}`)

	t.Run("valid signature settles and grants", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingWebhookSecret] = "hook-secret"
		f.payments.transactions["tx-100"] = &models.PaymentTransaction{
			BaseModel: models.BaseModel{ID: "pay-1"},
			TxRef:     "tx-100",
			UserID:    "user-1",
			PlanName:  "premium",
		}

		signature := chapa.ComputeSignature(body, "hook-secret")

		resp, err := f.service.ProcessWebhook(context.Background(), body, signature, payload)
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatusCompleted, resp.Status)
		assert.Equal(t, "premium", resp.PlanName)
		assert.False(t, resp.AlreadyGranted)

		require.Len(t, f.payments.statusCalls, 1)
		assert.Equal(t, models.PaymentStatusCompleted, f.payments.statusCalls[0].status)
		assert.Equal(t, "chapa-ref-1", f.payments.statusCalls[0].gatewayRef)
		assert.Equal(t, 1, f.payments.grantCalls)
		assert.Len(t, f.notifications.created, 1)
		assert.Empty(t, f.verifier.verified, "gateway should not be called when a webhook secret exists")
	})

	t.Run("invalid signature is rejected before any write", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingWebhookSecret] = "hook-secret"

		_, err := f.service.ProcessWebhook(context.Background(), body, "deadbeef", payload)
		assert.Equal(t, apperrors.ErrInvalidSignature, err)
		assert.Empty(t, f.payments.statusCalls)
		assert.Zero(t, f.payments.grantCalls)
	})

	t.Run("tampered body is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingWebhookSecret] = "hook-secret"

		signature := chapa.ComputeSignature(body, "hook-secret")
		tampered := []byte(`{"tx_ref":"tx-100","status":"success","reference":"evil"}`)

		_, err := f.service.ProcessWebhook(context.Background(), tampered, signature, payload)
		assert.Equal(t, apperrors.ErrInvalidSignature, err)
	})

	t.Run("no webhook secret falls back to gateway verification", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingSecretKey] = "api-secret"
		f.payments.transactions["tx-100"] = &models.PaymentTransaction{
			BaseModel: models.BaseModel{ID: "pay-1"},
			TxRef:     "tx-100",
			UserID:    "user-1",
		}
		f.verifier.data = &chapa.VerifyData{TxRef: "tx-100", Status: "success", Reference: "api-ref"}

		resp, err := f.service.ProcessWebhook(context.Background(), body, "", payload)
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatusCompleted, resp.Status)
		assert.Equal(t, []string{"tx-100"}, f.verifier.verified)
		assert.Equal(t, "api-secret", f.verifier.secretKey)
		require.Len(t, f.payments.statusCalls, 1)
		assert.Equal(t, "api-ref", f.payments.statusCalls[0].gatewayRef)
	})

	t.Run("config file webhook secret is honored", func(t *testing.T) {
		f := newPaymentFixture(t)
		config.AppConfig.Chapa.WebhookSecret = "hook-secret"
		f.payments.transactions["tx-100"] = &models.PaymentTransaction{
			BaseModel: models.BaseModel{ID: "pay-1"},
			TxRef:     "tx-100",
			UserID:    "user-1",
			PlanName:  "premium",
		}

		signature := chapa.ComputeSignature(body, "hook-secret")

		resp, err := f.service.ProcessWebhook(context.Background(), body, signature, payload)
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatusCompleted, resp.Status)
		assert.Empty(t, f.verifier.verified, "gateway should not be called when a webhook secret exists")
	})

	t.Run("no secret anywhere fails closed", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.service.ProcessWebhook(context.Background(), body, "", payload)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeVerificationFailed, appErr.Code)
		assert.Empty(t, f.payments.statusCalls)
	})

	t.Run("failed status is recorded without a grant", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingWebhookSecret] = "hook-secret"

		failedBody := []byte(`{"tx_ref":"tx-100","status":"failed","reference":"chapa-ref-1"}`)
		failedPayload := &dto.WebhookPayload{TxRef: "tx-100", Status: "failed", Reference: "chapa-ref-1"}
		signature := chapa.ComputeSignature(failedBody, "hook-secret")

		resp, err := f.service.ProcessWebhook(context.Background(), failedBody, signature, failedPayload)
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatusFailed, resp.Status)
		require.Len(t, f.payments.statusCalls, 1)
		assert.Equal(t, models.PaymentStatusFailed, f.payments.statusCalls[0].status)
		assert.Zero(t, f.payments.grantCalls)
		assert.Empty(t, f.notifications.created)
	})

	t.Run("re-delivery after grant is idempotent", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingWebhookSecret] = "hook-secret"
		f.payments.grantResult = &repositories.GrantResult{AlreadyGranted: true, PlanName: "premium"}

		signature := chapa.ComputeSignature(body, "hook-secret")

		resp, err := f.service.ProcessWebhook(context.Background(), body, signature, payload)
		require.NoError(t, err)

		assert.True(t, resp.AlreadyGranted)
		assert.Empty(t, f.notifications.created, "no second notification on re-delivery")
	})
}

func TestVerifyPayment(t *testing.T) {
	t.Run("confirmed charge settles", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingSecretKey] = "api-secret"
		f.payments.transactions["tx-200"] = &models.PaymentTransaction{
			BaseModel: models.BaseModel{ID: "pay-2"},
			TxRef:     "tx-200",
			UserID:    "user-1",
		}
		f.verifier.data = &chapa.VerifyData{TxRef: "tx-200", Status: "success", Reference: "api-ref"}

		resp, err := f.service.VerifyPayment(context.Background(), "tx-200")
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatusCompleted, resp.Status)
		assert.Equal(t, 1, f.payments.grantCalls)
	})

	t.Run("gateway refusal records a failed status", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingSecretKey] = "api-secret"
		f.verifier.err = chapa.ErrVerificationFailed

		_, err := f.service.VerifyPayment(context.Background(), "tx-200")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeVerificationFailed, appErr.Code)

		require.Len(t, f.payments.statusCalls, 1)
		assert.Equal(t, models.PaymentStatusFailed, f.payments.statusCalls[0].status)
		assert.Equal(t, "Payment verification failed", f.payments.statusCalls[0].errorMessage)
		assert.Zero(t, f.payments.grantCalls)
	})

	t.Run("grant errors map to domain errors", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingSecretKey] = "api-secret"
		f.verifier.data = &chapa.VerifyData{TxRef: "tx-200", Status: "success"}
		f.payments.grantErr = repositories.ErrTransactionNotComplete

		_, err := f.service.VerifyPayment(context.Background(), "tx-200")
		assert.Equal(t, apperrors.ErrTransactionNotCompleted, err)
	})

	t.Run("unexpected grant failure wraps the cause", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.settings.settings[chapa.SettingSecretKey] = "api-secret"
		f.verifier.data = &chapa.VerifyData{TxRef: "tx-200", Status: "success"}
		f.payments.grantErr = errors.New("deadlock detected")

		_, err := f.service.VerifyPayment(context.Background(), "tx-200")

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeGrantFailed, appErr.Code)
		assert.ErrorContains(t, appErr.Err, "deadlock")
	})
}
