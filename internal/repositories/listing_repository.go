package repositories

import (
	"errors"

	"gebeya_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrAlreadyApplied      = errors.New("already applied to this listing")
	ErrAlreadyFavorited    = errors.New("listing already in favorites")
	ErrFavoriteNotFound    = errors.New("favorite not found")
)

// Sort columns exposed to clients. Anything else falls back to newest-first.
var listingSortWhitelist = map[string]string{
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"popular":    "view_count DESC",
}

type ListingRepository interface {
	// Listing operations
	Create(listing *models.Listing) error
	FindByID(id string) (*models.Listing, error)
	FindWithFilter(criteria ListingFilter) ([]models.Listing, int64, error)
	FindByUser(userID string) ([]models.Listing, error)
	Update(listing *models.Listing) error
	UpdateStatus(listingID string, status models.ListingStatus, rejectionReason string) error
	IncrementViews(listingID string) error
	Delete(id string) error
	CountByStatus(status models.ListingStatus) (int64, error)

	// Applications
	CreateApplication(app *models.ListingApplication) error
	FindApplicationsByListing(listingID string) ([]models.ListingApplication, error)
	FindApplicationsByUser(userID string) ([]models.ListingApplication, error)
	UpdateApplicationStatus(appID string, status models.ApplicationStatus) error

	// Comments
	CreateComment(comment *models.ListingComment) error
	FindCommentsByListing(listingID string) ([]models.ListingComment, error)
	DeleteComment(commentID, userID string) error

	// Favorites
	AddFavorite(userID, listingID string) error
	RemoveFavorite(userID, listingID string) error
	FindFavoritesByUser(userID string) ([]models.Listing, error)
	IsFavorited(userID, listingID string) (bool, error)
}

type ListingRepositoryImpl struct {
	db *gorm.DB
}

type ListingFilter struct {
	Status      models.ListingStatus
	CategoryID  string
	ListingType string
	City        string
	PriceMin    *float64
	PriceMax    *float64
	Search      string
	Sort        string
	Page        int
	PageSize    int
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

// Listing operations

func (r *ListingRepositoryImpl) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepositoryImpl) FindByID(id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Preload("User").Preload("Category").First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) FindWithFilter(criteria ListingFilter) ([]models.Listing, int64, error) {
	var listings []models.Listing
	query := r.db.Model(&models.Listing{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.CategoryID != "" {
		query = query.Where("category_id = ?", criteria.CategoryID)
	}
	if criteria.ListingType != "" {
		query = query.Where("listing_type = ?", criteria.ListingType)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.PriceMin != nil {
		query = query.Where("price >= ?", *criteria.PriceMin)
	}
	if criteria.PriceMax != nil {
		query = query.Where("price <= ?", *criteria.PriceMax)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := listingSortWhitelist[criteria.Sort]
	if !ok {
		order = listingSortWhitelist["newest"]
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("Category").
		Order(order).Limit(limit).Offset(offset).Find(&listings).Error

	return listings, total, err
}

func (r *ListingRepositoryImpl) FindByUser(userID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Preload("Category").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *ListingRepositoryImpl) Update(listing *models.Listing) error {
	result := r.db.Model(listing).Updates(map[string]interface{}{
		"title":        listing.Title,
		"description":  listing.Description,
		"price":        listing.Price,
		"currency":     listing.Currency,
		"listing_type": listing.ListingType,
		"city":         listing.City,
		"category_id":  listing.CategoryID,
		"attributes":   listing.Attributes,
		"images":       listing.Images,
		"status":       listing.Status,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) UpdateStatus(listingID string, status models.ListingStatus, rejectionReason string) error {
	result := r.db.Model(&models.Listing{}).Where("id = ?", listingID).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) IncrementViews(listingID string) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", listingID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ListingRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Listing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) CountByStatus(status models.ListingStatus) (int64, error) {
	var count int64
	query := r.db.Model(&models.Listing{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// Applications

func (r *ListingRepositoryImpl) CreateApplication(app *models.ListingApplication) error {
	var count int64
	if err := r.db.Model(&models.ListingApplication{}).
		Where("listing_id = ? AND user_id = ?", app.ListingID, app.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyApplied
	}

	return r.db.Create(app).Error
}

func (r *ListingRepositoryImpl) FindApplicationsByListing(listingID string) ([]models.ListingApplication, error) {
	var apps []models.ListingApplication
	err := r.db.Preload("User").Where("listing_id = ?", listingID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ListingRepositoryImpl) FindApplicationsByUser(userID string) ([]models.ListingApplication, error) {
	var apps []models.ListingApplication
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ListingRepositoryImpl) UpdateApplicationStatus(appID string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.ListingApplication{}).Where("id = ?", appID).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// Comments

func (r *ListingRepositoryImpl) CreateComment(comment *models.ListingComment) error {
	return r.db.Create(comment).Error
}

func (r *ListingRepositoryImpl) FindCommentsByListing(listingID string) ([]models.ListingComment, error) {
	var comments []models.ListingComment
	err := r.db.Preload("User").Where("listing_id = ?", listingID).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *ListingRepositoryImpl) DeleteComment(commentID, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.ListingComment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// Favorites

func (r *ListingRepositoryImpl) AddFavorite(userID, listingID string) error {
	var count int64
	if err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFavorited
	}

	return r.db.Create(&models.Favorite{UserID: userID, ListingID: listingID}).Error
}

func (r *ListingRepositoryImpl) RemoveFavorite(userID, listingID string) error {
	result := r.db.Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) FindFavoritesByUser(userID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Preload("Category").
		Joins("JOIN favorites ON favorites.listing_id = listings.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *ListingRepositoryImpl) IsFavorited(userID, listingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}
