package services

import (
	"errors"

	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"
)

// ContentService manages site content the admin curates: announcements,
// locations and email template overrides.
type ContentService interface {
	GetAnnouncements() ([]models.Announcement, error)
	CreateAnnouncement(req *dto.AnnouncementRequest) (*models.Announcement, error)
	UpdateAnnouncement(announcementID string, req *dto.AnnouncementRequest) (*models.Announcement, error)
	DeleteAnnouncement(announcementID string) error

	GetLocations() ([]models.Location, error)
	CreateLocation(req *dto.LocationRequest) (*models.Location, error)
	UpdateLocation(locationID string, req *dto.LocationRequest) (*models.Location, error)
	DeleteLocation(locationID string) error

	GetEmailTemplates() ([]models.EmailTemplate, error)
	GetEmailTemplate(templateID string) (*models.EmailTemplate, error)
	CreateEmailTemplate(req *dto.EmailTemplateRequest) (*models.EmailTemplate, error)
	UpdateEmailTemplate(templateID string, req *dto.EmailTemplateRequest) (*models.EmailTemplate, error)
	DeleteEmailTemplate(templateID string) error
}

type contentService struct {
	announcementRepo repositories.AnnouncementRepository
	locationRepo     repositories.LocationRepository
	templateRepo     repositories.EmailTemplateRepository
}

func NewContentService(
	announcementRepo repositories.AnnouncementRepository,
	locationRepo repositories.LocationRepository,
	templateRepo repositories.EmailTemplateRepository,
) ContentService {
	return &contentService{
		announcementRepo: announcementRepo,
		locationRepo:     locationRepo,
		templateRepo:     templateRepo,
	}
}

// Announcements

func (s *contentService) GetAnnouncements() ([]models.Announcement, error) {
	announcements, err := s.announcementRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return announcements, nil
}

func (s *contentService) CreateAnnouncement(req *dto.AnnouncementRequest) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return announcement, nil
}

func (s *contentService) UpdateAnnouncement(announcementID string, req *dto.AnnouncementRequest) (*models.Announcement, error) {
	announcement := &models.Announcement{
		BaseModel: models.BaseModel{ID: announcementID},
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.announcementRepo.Update(announcement); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return announcement, nil
}

func (s *contentService) DeleteAnnouncement(announcementID string) error {
	if err := s.announcementRepo.Delete(announcementID); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Locations

func (s *contentService) GetLocations() ([]models.Location, error) {
	locations, err := s.locationRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return locations, nil
}

func (s *contentService) CreateLocation(req *dto.LocationRequest) (*models.Location, error) {
	location := &models.Location{
		Name:   req.Name,
		Region: req.Region,
	}
	if err := s.locationRepo.Create(location); err != nil {
		if errors.Is(err, repositories.ErrLocationAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return location, nil
}

func (s *contentService) UpdateLocation(locationID string, req *dto.LocationRequest) (*models.Location, error) {
	location := &models.Location{
		BaseModel: models.BaseModel{ID: locationID},
		Name:      req.Name,
		Region:    req.Region,
	}
	if err := s.locationRepo.Update(location); err != nil {
		if errors.Is(err, repositories.ErrLocationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return location, nil
}

func (s *contentService) DeleteLocation(locationID string) error {
	if err := s.locationRepo.Delete(locationID); err != nil {
		if errors.Is(err, repositories.ErrLocationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Email templates

func (s *contentService) GetEmailTemplates() ([]models.EmailTemplate, error) {
	templates, err := s.templateRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

func (s *contentService) GetEmailTemplate(templateID string) (*models.EmailTemplate, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *contentService) CreateEmailTemplate(req *dto.EmailTemplateRequest) (*models.EmailTemplate, error) {
	template := &models.EmailTemplate{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.templateRepo.Create(template); err != nil {
		if errors.Is(err, repositories.ErrTemplateAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *contentService) UpdateEmailTemplate(templateID string, req *dto.EmailTemplateRequest) (*models.EmailTemplate, error) {
	template := &models.EmailTemplate{
		BaseModel: models.BaseModel{ID: templateID},
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
	}
	if err := s.templateRepo.Update(template); err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *contentService) DeleteEmailTemplate(templateID string) error {
	if err := s.templateRepo.Delete(templateID); err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
