package services

import (
	"testing"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementRepo struct {
	repositories.AnnouncementRepository
	stored    []*models.Announcement
	updateErr error
	deleteErr error
}

func (f *fakeAnnouncementRepo) Create(a *models.Announcement) error {
	f.stored = append(f.stored, a)
	return nil
}

func (f *fakeAnnouncementRepo) FindAll() ([]models.Announcement, error) {
	out := make([]models.Announcement, 0, len(f.stored))
	for _, a := range f.stored {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) Update(a *models.Announcement) error { return f.updateErr }
func (f *fakeAnnouncementRepo) Delete(id string) error              { return f.deleteErr }

type fakeLocationRepo struct {
	repositories.LocationRepository
	createErr error
	created   []*models.Location
}

func (f *fakeLocationRepo) Create(l *models.Location) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, l)
	return nil
}

type fakeTemplateRepo struct {
	repositories.EmailTemplateRepository
	byID      map[string]*models.EmailTemplate
	createErr error
}

func (f *fakeTemplateRepo) Create(tmpl *models.EmailTemplate) error { return f.createErr }

func (f *fakeTemplateRepo) FindByID(id string) (*models.EmailTemplate, error) {
	tmpl, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrTemplateNotFound
	}
	return tmpl, nil
}

func TestAnnouncements(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		repo := &fakeAnnouncementRepo{}
		svc := NewContentService(repo, &fakeLocationRepo{}, &fakeTemplateRepo{})

		created, err := svc.CreateAnnouncement(&dto.AnnouncementRequest{
			Title:   "Scheduled maintenance",
			Content: "The site will be down Sunday night.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Scheduled maintenance", created.Title)

		all, err := svc.GetAnnouncements()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update of a missing announcement is not found", func(t *testing.T) {
		repo := &fakeAnnouncementRepo{updateErr: repositories.ErrAnnouncementNotFound}
		svc := NewContentService(repo, &fakeLocationRepo{}, &fakeTemplateRepo{})

		_, err := svc.UpdateAnnouncement("missing", &dto.AnnouncementRequest{Title: "t", Content: "c"})

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestLocations(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		repo := &fakeLocationRepo{}
		svc := NewContentService(&fakeAnnouncementRepo{}, repo, &fakeTemplateRepo{})

		location, err := svc.CreateLocation(&dto.LocationRequest{Name: "Bole", Region: "Addis Ababa"})
		require.NoError(t, err)
		assert.Equal(t, "Bole", location.Name)
		require.Len(t, repo.created, 1)
	})

	t.Run("duplicate name and region is rejected", func(t *testing.T) {
		repo := &fakeLocationRepo{createErr: repositories.ErrLocationAlreadyExists}
		svc := NewContentService(&fakeAnnouncementRepo{}, repo, &fakeTemplateRepo{})

		_, err := svc.CreateLocation(&dto.LocationRequest{Name: "Bole", Region: "Addis Ababa"})

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
	})
}

func TestEmailTemplates(t *testing.T) {
	t.Run("get by id", func(t *testing.T) {
		repo := &fakeTemplateRepo{byID: map[string]*models.EmailTemplate{
			"tpl-1": {
				BaseModel: models.BaseModel{ID: "tpl-1"},
				Name:      "otp",
				Subject:   "Your code",
				Body:      "<p>{{.Code}}</p>",
			},
		}}
		svc := NewContentService(&fakeAnnouncementRepo{}, &fakeLocationRepo{}, repo)

		tmpl, err := svc.GetEmailTemplate("tpl-1")
		require.NoError(t, err)
		assert.Equal(t, "otp", tmpl.Name)

		_, err = svc.GetEmailTemplate("missing")
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := &fakeTemplateRepo{createErr: repositories.ErrTemplateAlreadyExists}
		svc := NewContentService(&fakeAnnouncementRepo{}, &fakeLocationRepo{}, repo)

		_, err := svc.CreateEmailTemplate(&dto.EmailTemplateRequest{
			Name: "otp", Subject: "s", Body: "b",
		})

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
	})
}
