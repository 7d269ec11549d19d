package services

import (
	"context"
	"encoding/json"
	"errors"

	"gebeya_backend/internal/logger"
	"gebeya_backend/internal/models"
	"gebeya_backend/internal/repositories"
	"gebeya_backend/internal/services/dto"
	"gebeya_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ListingService interface {
	CreateListing(ctx context.Context, userID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	GetListing(ctx context.Context, listingID, viewerID string) (*dto.ListingResponse, error)
	BrowseListings(query *dto.BrowseListingsQuery) (*dto.ListingListResponse, error)
	GetMyListings(userID string) ([]dto.ListingResponse, error)
	UpdateListing(ctx context.Context, userID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error)
	DeleteListing(userID string, isAdmin bool, listingID string) error

	// Applications
	ApplyToListing(ctx context.Context, userID, listingID string, req *dto.ApplyToListingRequest) error
	GetListingApplications(userID, listingID string) ([]models.ListingApplication, error)
	GetMyApplications(userID string) ([]models.ListingApplication, error)
	DecideApplication(ctx context.Context, userID, listingID, applicationID string, accept bool) error

	// Comments
	AddComment(ctx context.Context, userID, listingID string, req *dto.CreateCommentRequest) (*models.ListingComment, error)
	GetComments(listingID string) ([]models.ListingComment, error)
	DeleteComment(userID, commentID string) error

	// Favorites
	ToggleFavorite(userID, listingID string) (favorited bool, err error)
	GetFavorites(userID string) ([]dto.ListingResponse, error)

	// Moderation
	ModerateListing(ctx context.Context, listingID string, req *dto.ModerateListingRequest) error
	GetListingsForModeration(query *dto.BrowseListingsQuery, status models.ListingStatus) (*dto.ListingListResponse, error)
}

type listingService struct {
	listingRepo      repositories.ListingRepository
	categoryRepo     repositories.CategoryRepository
	notificationRepo repositories.NotificationRepository
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	categoryRepo repositories.CategoryRepository,
	notificationRepo repositories.NotificationRepository,
) ListingService {
	return &listingService{
		listingRepo:      listingRepo,
		categoryRepo:     categoryRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *listingService) CreateListing(ctx context.Context, userID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "ETB"
	}

	listing := &models.Listing{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		ListingType: req.ListingType,
		City:        req.City,
		Status:      models.ListingStatusPending,
	}

	if req.Attributes != nil {
		raw, err := json.Marshal(req.Attributes)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid attributes")
		}
		listing.Attributes = datatypes.JSON(raw)
	}
	if req.Images != nil {
		raw, err := json.Marshal(req.Images)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid images")
		}
		listing.Images = datatypes.JSON(raw)
	}

	if err := s.listingRepo.Create(listing); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "listing created", "listing_id", listing.ID)

	resp := dto.ListingFromModel(listing)
	return &resp, nil
}

func (s *listingService) GetListing(ctx context.Context, listingID, viewerID string) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Unapproved listings are visible only to their owner.
	if listing.Status != models.ListingStatusApproved && listing.UserID != viewerID {
		return nil, apperrors.ErrNotFound(repositories.ErrListingNotFound)
	}

	if listing.Status == models.ListingStatusApproved && listing.UserID != viewerID {
		if err := s.listingRepo.IncrementViews(listingID); err != nil {
			logger.CtxWithError(ctx, "failed to increment views", err, "listing_id", listingID)
		}
	}

	resp := dto.ListingFromModel(listing)
	if viewerID != "" {
		favorited, err := s.listingRepo.IsFavorited(viewerID, listingID)
		if err == nil {
			resp.IsFavorited = favorited
		}
	}

	return &resp, nil
}

// BrowseListings searches approved listings only.
func (s *listingService) BrowseListings(query *dto.BrowseListingsQuery) (*dto.ListingListResponse, error) {
	filter := repositories.ListingFilter{
		Status:      models.ListingStatusApproved,
		CategoryID:  query.CategoryID,
		ListingType: query.ListingType,
		City:        query.City,
		PriceMin:    query.PriceMin,
		PriceMax:    query.PriceMax,
		Search:      query.Search,
		Sort:        query.Sort,
		Page:        normalizePage(query.Page),
		PageSize:    normalizePageSize(query.PageSize),
	}

	listings, total, err := s.listingRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildListingList(listings, total, filter.Page, filter.PageSize), nil
}

func (s *listingService) GetMyListings(userID string) ([]dto.ListingResponse, error) {
	listings, err := s.listingRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, dto.ListingFromModel(&listings[i]))
	}
	return responses, nil
}

// UpdateListing edits an owned listing. Any edit sends the listing back
// to moderation.
func (s *listingService) UpdateListing(ctx context.Context, userID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if listing.UserID != userID {
		return nil, apperrors.ErrNotListingOwner
	}

	if req.Title != "" {
		listing.Title = req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.City != nil {
		listing.City = *req.City
	}
	if req.CategoryID != "" {
		if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
			return nil, apperrors.ErrNotFound(err)
		}
		listing.CategoryID = req.CategoryID
	}
	if req.Attributes != nil {
		raw, err := json.Marshal(req.Attributes)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid attributes")
		}
		listing.Attributes = datatypes.JSON(raw)
	}
	if req.Images != nil {
		raw, err := json.Marshal(req.Images)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid images")
		}
		listing.Images = datatypes.JSON(raw)
	}

	listing.Status = models.ListingStatusPending
	listing.RejectionReason = ""

	if err := s.listingRepo.Update(listing); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "listing updated", "listing_id", listingID)

	resp := dto.ListingFromModel(listing)
	return &resp, nil
}

func (s *listingService) DeleteListing(userID string, isAdmin bool, listingID string) error {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if listing.UserID != userID && !isAdmin {
		return apperrors.ErrNotListingOwner
	}

	if err := s.listingRepo.Delete(listingID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Applications

func (s *listingService) ApplyToListing(ctx context.Context, userID, listingID string, req *dto.ApplyToListingRequest) error {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if listing.Status != models.ListingStatusApproved {
		return apperrors.ErrListingNotApproved
	}
	if listing.UserID == userID {
		return apperrors.ErrInvalidOperation("listing", "Cannot apply to your own listing")
	}

	app := &models.ListingApplication{
		ListingID: listingID,
		UserID:    userID,
		Message:   req.Message,
	}
	if err := s.listingRepo.CreateApplication(app); err != nil {
		if errors.Is(err, repositories.ErrAlreadyApplied) {
			return apperrors.ErrAlreadyApplied
		}
		return apperrors.InternalError(err)
	}

	s.notify(ctx, listing.UserID, repositories.NotificationTypeNewApplication,
		"New application", "Someone applied to your listing \""+listing.Title+"\"", &listingID)

	return nil
}

func (s *listingService) GetListingApplications(userID, listingID string) ([]models.ListingApplication, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if listing.UserID != userID {
		return nil, apperrors.ErrNotListingOwner
	}

	apps, err := s.listingRepo.FindApplicationsByListing(listingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *listingService) GetMyApplications(userID string) ([]models.ListingApplication, error) {
	apps, err := s.listingRepo.FindApplicationsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

// DecideApplication lets the listing owner accept or reject an application.
func (s *listingService) DecideApplication(ctx context.Context, userID, listingID, applicationID string, accept bool) error {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if listing.UserID != userID {
		return apperrors.ErrNotListingOwner
	}

	status := models.ApplicationStatusRejected
	if accept {
		status = models.ApplicationStatusAccepted
	}
	if err := s.listingRepo.UpdateApplicationStatus(applicationID, status); err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application decided", "listing_id", listingID, "application_id", applicationID, "status", status)
	return nil
}

// Comments

func (s *listingService) AddComment(ctx context.Context, userID, listingID string, req *dto.CreateCommentRequest) (*models.ListingComment, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if listing.Status != models.ListingStatusApproved {
		return nil, apperrors.ErrListingNotApproved
	}

	comment := &models.ListingComment{
		ListingID: listingID,
		UserID:    userID,
		Content:   req.Content,
	}
	if err := s.listingRepo.CreateComment(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if listing.UserID != userID {
		s.notify(ctx, listing.UserID, repositories.NotificationTypeNewComment,
			"New comment", "New comment on your listing \""+listing.Title+"\"", &listingID)
	}

	return comment, nil
}

func (s *listingService) GetComments(listingID string) ([]models.ListingComment, error) {
	comments, err := s.listingRepo.FindCommentsByListing(listingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comments, nil
}

func (s *listingService) DeleteComment(userID, commentID string) error {
	if err := s.listingRepo.DeleteComment(commentID, userID); err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Favorites

func (s *listingService) ToggleFavorite(userID, listingID string) (bool, error) {
	if _, err := s.listingRepo.FindByID(listingID); err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return false, apperrors.ErrNotFound(err)
		}
		return false, apperrors.InternalError(err)
	}

	err := s.listingRepo.AddFavorite(userID, listingID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repositories.ErrAlreadyFavorited) {
		if err := s.listingRepo.RemoveFavorite(userID, listingID); err != nil {
			return false, apperrors.InternalError(err)
		}
		return false, nil
	}
	return false, apperrors.InternalError(err)
}

func (s *listingService) GetFavorites(userID string) ([]dto.ListingResponse, error) {
	listings, err := s.listingRepo.FindFavoritesByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, dto.ListingFromModel(&listings[i]))
	}
	return responses, nil
}

// Moderation

func (s *listingService) ModerateListing(ctx context.Context, listingID string, req *dto.ModerateListingRequest) error {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	status := models.ListingStatus(req.Status)
	if err := s.listingRepo.UpdateStatus(listingID, status, req.RejectionReason); err != nil {
		return apperrors.InternalError(err)
	}

	switch status {
	case models.ListingStatusApproved:
		s.notify(ctx, listing.UserID, repositories.NotificationTypeListingApproved,
			"Listing approved", "Your listing \""+listing.Title+"\" is now live", &listingID)
	case models.ListingStatusRejected:
		message := "Your listing \"" + listing.Title + "\" was rejected"
		if req.RejectionReason != "" {
			message += ": " + req.RejectionReason
		}
		s.notify(ctx, listing.UserID, repositories.NotificationTypeListingRejected,
			"Listing rejected", message, &listingID)
	}

	logger.CtxInfo(ctx, "listing moderated", "listing_id", listingID, "status", status)
	return nil
}

func (s *listingService) GetListingsForModeration(query *dto.BrowseListingsQuery, status models.ListingStatus) (*dto.ListingListResponse, error) {
	filter := repositories.ListingFilter{
		Status:   status,
		Search:   query.Search,
		Page:     normalizePage(query.Page),
		PageSize: normalizePageSize(query.PageSize),
	}

	listings, total, err := s.listingRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildListingList(listings, total, filter.Page, filter.PageSize), nil
}

// notify is fire-and-forget.
func (s *listingService) notify(ctx context.Context, userID, notificationType, title, message string, relatedID *string) {
	notification := &models.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.CtxWithError(ctx, "failed to create notification", err, "user_id", userID)
	}
}

func buildListingList(listings []models.Listing, total int64, page, pageSize int) *dto.ListingListResponse {
	responses := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, dto.ListingFromModel(&listings[i]))
	}
	return &dto.ListingListResponse{
		Listings: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(size int) int {
	if size < 1 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}
