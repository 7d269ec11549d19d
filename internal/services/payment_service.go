package services

import (
	"context"
	"errors"
	"strings"

	"gebeya_backend/internal/config"
	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/pkg/chapa"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

// GatewayVerifier confirms a transaction with the payment gateway.
type GatewayVerifier interface {
	Verify(ctx context.Context, txRef string) (*chapa.VerifyData, error)
}

// VerifierFactory builds a verifier for the secret key resolved on this
// call. Resolution happens per request so secret rotation through the
// admin settings takes effect immediately.
type VerifierFactory func(secretKey string) GatewayVerifier

type PaymentService interface {
	InitializePayment(ctx context.Context, userID string, req *dto.InitializePaymentRequest) (*dto.PaymentStatusResponse, error)
	ProcessWebhook(ctx context.Context, rawBody []byte, signature string, payload *dto.WebhookPayload) (*dto.PaymentStatusResponse, error)
	VerifyPayment(ctx context.Context, txRef string) (*dto.PaymentStatusResponse, error)
	GetPaymentHistory(userID string, limit int) ([]dto.PaymentHistoryItem, error)
}

type paymentService struct {
	paymentRepo      repositories.PaymentRepository
	userRepo         repositories.UserRepository
	settingRepo      repositories.SettingRepository
	notificationRepo repositories.NotificationRepository
	newVerifier      VerifierFactory
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	settingRepo repositories.SettingRepository,
	notificationRepo repositories.NotificationRepository,
	newVerifier VerifierFactory,
) PaymentService {
	if newVerifier == nil {
		newVerifier = func(secretKey string) GatewayVerifier {
			return chapa.NewClient(secretKey, config.GetConfig().Chapa.BaseURL)
		}
	}
	return &paymentService{
		paymentRepo:      paymentRepo,
		userRepo:         userRepo,
		settingRepo:      settingRepo,
		notificationRepo: notificationRepo,
		newVerifier:      newVerifier,
	}
}

// InitializePayment records a pending ledger row before the client is
// redirected to the gateway. Customer details are snapshotted from the
// stored user, never taken from the request.
func (s *paymentService) InitializePayment(ctx context.Context, userID string, req *dto.InitializePaymentRequest) (*dto.PaymentStatusResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	firstName, lastName := splitFullName(user.FullName)

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	tx := &models.PaymentTransaction{
		TxRef:     req.TxRef,
		UserID:    userID,
		PlanName:  req.PlanName,
		Amount:    req.Amount,
		Currency:  "ETB",
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := s.paymentRepo.CreateTransaction(tx); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return nil, apperrors.ErrDuplicateReference
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "payment initialized", "tx_ref", req.TxRef, "plan", req.PlanName)

	return &dto.PaymentStatusResponse{
		TxRef:  tx.TxRef,
		Status: models.PaymentStatusPending,
	}, nil
}

// ProcessWebhook handles a gateway delivery. With a configured webhook
// secret the raw body signature is checked; without one the transaction
// is re-verified against the gateway API instead. Re-deliveries of a
// terminal status are absorbed by the idempotent grant.
func (s *paymentService) ProcessWebhook(ctx context.Context, rawBody []byte, signature string, payload *dto.WebhookPayload) (*dto.PaymentStatusResponse, error) {
	_, configuredWebhookSecret := configuredChapaSecrets()
	secret, hasSecret := chapa.ResolveSecret(s.settingRepo, chapa.SettingWebhookSecret, chapa.EnvWebhookSecret, configuredWebhookSecret)

	succeeded := payload.Status == "success"
	gatewayRef := payload.Reference

	if hasSecret {
		if err := chapa.VerifySignature(rawBody, signature, secret); err != nil {
			logger.CtxWarn(ctx, "webhook signature rejected", "tx_ref", payload.TxRef)
			return nil, apperrors.ErrInvalidSignature
		}
	} else {
		// No webhook secret anywhere: do not trust the body, ask the
		// gateway directly.
		data, err := s.verifyWithGateway(ctx, payload.TxRef)
		if err != nil {
			return nil, err
		}
		succeeded = data.Status == "success"
		gatewayRef = data.Reference
	}

	return s.settle(ctx, payload.TxRef, succeeded, gatewayRef)
}

// VerifyPayment is the client-initiated fallback: the browser returns
// from the gateway and asks us to confirm the charge.
func (s *paymentService) VerifyPayment(ctx context.Context, txRef string) (*dto.PaymentStatusResponse, error) {
	data, err := s.verifyWithGateway(ctx, txRef)
	if err != nil {
		// The gateway would not confirm the charge; record the failure.
		if updateErr := s.paymentRepo.UpdateStatus(txRef, models.PaymentStatusFailed, "", "Payment verification failed"); updateErr != nil &&
			!errors.Is(updateErr, repositories.ErrPaymentNotFound) {
			logger.CtxWithError(ctx, "failed to record verification failure", updateErr, "tx_ref", txRef)
		}
		return nil, err
	}

	return s.settle(ctx, txRef, data.Status == "success", data.Reference)
}

func (s *paymentService) GetPaymentHistory(userID string, limit int) ([]dto.PaymentHistoryItem, error) {
	txs, err := s.paymentRepo.FindTransactionsByUser(userID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.PaymentHistoryFromModels(txs), nil
}

// settle writes the terminal status and, on success, grants the plan.
func (s *paymentService) settle(ctx context.Context, txRef string, succeeded bool, gatewayRef string) (*dto.PaymentStatusResponse, error) {
	if !succeeded {
		if err := s.paymentRepo.UpdateStatus(txRef, models.PaymentStatusFailed, gatewayRef, "payment was not successful"); err != nil {
			if errors.Is(err, repositories.ErrPaymentNotFound) {
				return nil, apperrors.ErrPaymentNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return &dto.PaymentStatusResponse{TxRef: txRef, Status: models.PaymentStatusFailed}, nil
	}

	if err := s.paymentRepo.UpdateStatus(txRef, models.PaymentStatusCompleted, gatewayRef, ""); err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	grant, err := s.paymentRepo.GrantSubscription(txRef)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPaymentNotFound):
			return nil, apperrors.ErrPaymentNotFound
		case errors.Is(err, repositories.ErrTransactionNotComplete):
			return nil, apperrors.ErrTransactionNotCompleted
		default:
			return nil, apperrors.WrapGrantFailed(err)
		}
	}

	if !grant.AlreadyGranted {
		s.notifyPaymentSuccess(ctx, txRef, grant.PlanName)
	}

	logger.CtxInfo(ctx, "payment settled", "tx_ref", txRef, "plan", grant.PlanName, "already_granted", grant.AlreadyGranted)

	return &dto.PaymentStatusResponse{
		TxRef:          txRef,
		Status:         models.PaymentStatusCompleted,
		PlanName:       grant.PlanName,
		AlreadyGranted: grant.AlreadyGranted,
	}, nil
}

func (s *paymentService) verifyWithGateway(ctx context.Context, txRef string) (*chapa.VerifyData, error) {
	configuredSecretKey, _ := configuredChapaSecrets()
	secretKey, ok := chapa.ResolveSecret(s.settingRepo, chapa.SettingSecretKey, chapa.EnvSecretKey, configuredSecretKey)
	if !ok {
		return nil, apperrors.WrapVerificationFailed(errors.New("gateway secret key not configured"))
	}

	data, err := s.newVerifier(secretKey).Verify(ctx, txRef)
	if err != nil {
		return nil, apperrors.WrapVerificationFailed(err)
	}
	return data, nil
}

// notifyPaymentSuccess is fire-and-forget: a notification failure never
// fails the payment.
func (s *paymentService) notifyPaymentSuccess(ctx context.Context, txRef, planName string) {
	tx, err := s.paymentRepo.FindByTxRef(txRef)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load transaction for notification", err, "tx_ref", txRef)
		return
	}

	notification := &models.Notification{
		UserID:    tx.UserID,
		Type:      repositories.NotificationTypePaymentSuccess,
		Title:     "Subscription activated",
		Message:   "Your " + planName + " subscription is now active.",
		RelatedID: &tx.ID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxWithError(ctx, "failed to create payment notification", err, "tx_ref", txRef)
	}
}

// configuredChapaSecrets returns the config-file gateway secrets, empty
// when no config has been loaded.
func configuredChapaSecrets() (secretKey, webhookSecret string) {
	if cfg := config.AppConfig; cfg != nil {
		return cfg.Chapa.SecretKey, cfg.Chapa.WebhookSecret
	}
	return "", ""
}

// splitFullName breaks a stored full name into the first/last pair the
// gateway expects, with placeholders when parts are missing.
func splitFullName(fullName string) (string, string) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "Customer", "User"
	}
	first := fields[0]
	last := strings.Join(fields[1:], " ")
	if last == "" {
		last = "User"
	}
	return first, last
}
