package services

import (
	"context"
	"testing"
	"time"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeVerificationUserRepo struct {
	repositories.UserRepository
	users map[string]*models.User

	requested map[string]datatypes.JSON
	approved  []string
	rejected  map[string]string
}

func (f *fakeVerificationUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeVerificationUserRepo) RequestVerification(userID string, documents datatypes.JSON) error {
	f.requested[userID] = documents
	return nil
}

func (f *fakeVerificationUserRepo) ApproveVerification(userID string) error {
	f.approved = append(f.approved, userID)
	return nil
}

func (f *fakeVerificationUserRepo) RejectVerification(userID, reason string) error {
	f.rejected[userID] = reason
	return nil
}

func (f *fakeVerificationUserRepo) FindPendingVerifications() ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.VerificationStatus == models.VerificationStatusPending {
			out = append(out, *user)
		}
	}
	return out, nil
}

type verificationFixture struct {
	service       VerificationService
	users         *fakeVerificationUserRepo
	notifications *fakeNotificationRepo
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()

	email := "selam@example.com"
	f := &verificationFixture{
		users: &fakeVerificationUserRepo{
			users: map[string]*models.User{
				"company-1": {
					BaseModel:   models.BaseModel{ID: "company-1"},
					FullName:    "Selam Trading",
					Email:       &email,
					AccountType: models.AccountTypeCompany,
					CompanyName: "Selam Trading PLC",
				},
				"person-1": {
					BaseModel:   models.BaseModel{ID: "person-1"},
					FullName:    "Abebe Bikila",
					AccountType: models.AccountTypeIndividual,
				},
			},
			requested: map[string]datatypes.JSON{},
			rejected:  map[string]string{},
		},
		notifications: &fakeNotificationRepo{},
	}
	f.service = NewVerificationService(f.users, f.notifications)
	return f
}

func TestRequestVerification(t *testing.T) {
	docs := &dto.RequestVerificationRequest{
		Documents: []string{"https://cdn.example.com/license.pdf"},
	}

	t.Run("company can request", func(t *testing.T) {
		f := newVerificationFixture(t)

		err := f.service.RequestVerification(context.Background(), "company-1", docs)
		require.NoError(t, err)

		stored, ok := f.users.requested["company-1"]
		require.True(t, ok)
		assert.JSONEq(t, `["https://cdn.example.com/license.pdf"]`, string(stored))
	})

	t.Run("individual accounts are rejected", func(t *testing.T) {
		f := newVerificationFixture(t)

		err := f.service.RequestVerification(context.Background(), "person-1", docs)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
		assert.Empty(t, f.users.requested)
	})

	t.Run("pending request cannot be re-submitted", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.users.users["company-1"].VerificationStatus = models.VerificationStatusPending

		err := f.service.RequestVerification(context.Background(), "company-1", docs)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
	})

	t.Run("approved account cannot re-request", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.users.users["company-1"].VerificationStatus = models.VerificationStatusApproved

		err := f.service.RequestVerification(context.Background(), "company-1", docs)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newVerificationFixture(t)

		err := f.service.RequestVerification(context.Background(), "nobody", docs)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestApproveVerification(t *testing.T) {
	t.Run("pending request is approved and the user notified", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.users.users["company-1"].VerificationStatus = models.VerificationStatusPending

		err := f.service.ApproveVerification(context.Background(), "admin-1", "company-1")
		require.NoError(t, err)

		assert.Equal(t, []string{"company-1"}, f.users.approved)
		require.Len(t, f.notifications.created, 1)
		assert.Equal(t, "company-1", f.notifications.created[0].UserID)
		assert.Equal(t, repositories.NotificationTypeVerificationApproved, f.notifications.created[0].Type)
	})

	t.Run("nothing pending", func(t *testing.T) {
		f := newVerificationFixture(t)

		err := f.service.ApproveVerification(context.Background(), "admin-1", "company-1")

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
		assert.Empty(t, f.users.approved)
	})
}

func TestRejectVerification(t *testing.T) {
	t.Run("pending request is rejected with the reason", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.users.users["company-1"].VerificationStatus = models.VerificationStatusPending

		err := f.service.RejectVerification(context.Background(), "admin-1", "company-1",
			&dto.RejectVerificationRequest{Reason: "Document is expired"})
		require.NoError(t, err)

		assert.Equal(t, "Document is expired", f.users.rejected["company-1"])
		require.Len(t, f.notifications.created, 1)
		assert.Equal(t, repositories.NotificationTypeVerificationRejected, f.notifications.created[0].Type)
		assert.Contains(t, f.notifications.created[0].Message, "Document is expired")
	})

	t.Run("nothing pending", func(t *testing.T) {
		f := newVerificationFixture(t)

		err := f.service.RejectVerification(context.Background(), "admin-1", "company-1",
			&dto.RejectVerificationRequest{Reason: "no"})

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
		assert.Empty(t, f.users.rejected)
	})
}

func TestListPendingVerifications(t *testing.T) {
	f := newVerificationFixture(t)
	requestedAt := time.Now().Add(-time.Hour)
	company := f.users.users["company-1"]
	company.VerificationStatus = models.VerificationStatusPending
	company.VerificationDocuments = datatypes.JSON(`["https://cdn.example.com/license.pdf"]`)
	company.VerificationRequestedAt = &requestedAt

	items, err := f.service.ListPendingVerifications()
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "company-1", items[0].UserID)
	assert.Equal(t, "Selam Trading PLC", items[0].CompanyName)
	assert.Equal(t, "selam@example.com", items[0].Email)
	assert.Equal(t, []string{"https://cdn.example.com/license.pdf"}, items[0].Documents)
	require.NotNil(t, items[0].RequestedAt)
}

func TestGetVerificationStatus(t *testing.T) {
	f := newVerificationFixture(t)
	verifiedAt := time.Now()
	company := f.users.users["company-1"]
	company.VerificationStatus = models.VerificationStatusApproved
	company.VerifiedAt = &verifiedAt

	status, err := f.service.GetVerificationStatus("company-1")
	require.NoError(t, err)

	assert.Equal(t, models.AccountTypeCompany, status.AccountType)
	assert.Equal(t, models.VerificationStatusApproved, status.VerificationStatus)
	require.NotNil(t, status.VerifiedAt)

	_, err = f.service.GetVerificationStatus("nobody")
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
