package dto

import (
	"encoding/json"

	"gebeya_backend/internal/models"
)

type CreateListingRequest struct {
	Title       string                 `json:"title" binding:"required,min=3"`
	Description string                 `json:"description"`
	Price       float64                `json:"price" binding:"required,gt=0"`
	Currency    string                 `json:"currency"`
	ListingType string                 `json:"listing_type" binding:"required,oneof=sale rent service job"`
	City        string                 `json:"city"`
	CategoryID  string                 `json:"category_id" binding:"required,uuid"`
	Attributes  map[string]interface{} `json:"attributes"`
	Images      []string               `json:"images"`
}

type UpdateListingRequest struct {
	Title       string                 `json:"title" binding:"omitempty,min=3"`
	Description *string                `json:"description"`
	Price       *float64               `json:"price" binding:"omitempty,gt=0"`
	City        *string                `json:"city"`
	CategoryID  string                 `json:"category_id" binding:"omitempty,uuid"`
	Attributes  map[string]interface{} `json:"attributes"`
	Images      []string               `json:"images"`
}

type BrowseListingsQuery struct {
	CategoryID  string   `form:"category_id"`
	ListingType string   `form:"type"`
	City        string   `form:"city"`
	PriceMin    *float64 `form:"price_min"`
	PriceMax    *float64 `form:"price_max"`
	Search      string   `form:"search"`
	Sort        string   `form:"sort"`
	Page        int      `form:"page"`
	PageSize    int      `form:"page_size"`
}

type ModerateListingRequest struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}

type ApplyToListingRequest struct {
	Message string `json:"message"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type ListingResponse struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Price           float64                `json:"price"`
	Currency        string                 `json:"currency"`
	ListingType     string                 `json:"listing_type"`
	City            string                 `json:"city"`
	Status          models.ListingStatus   `json:"status"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
	Attributes      map[string]interface{} `json:"attributes,omitempty"`
	Images          []string               `json:"images,omitempty"`
	ViewCount       int                    `json:"view_count"`
	IsFavorited     bool                   `json:"is_favorited,omitempty"`
	CategoryName    string                 `json:"category_name,omitempty"`
	OwnerID         string                 `json:"owner_id"`
	OwnerName       string                 `json:"owner_name,omitempty"`
	CreatedAt       string                 `json:"created_at"`
}

type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func ListingFromModel(listing *models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:              listing.ID,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price,
		Currency:        listing.Currency,
		ListingType:     listing.ListingType,
		City:            listing.City,
		Status:          listing.Status,
		RejectionReason: listing.RejectionReason,
		ViewCount:       listing.ViewCount,
		OwnerID:         listing.UserID,
		CreatedAt:       listing.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if len(listing.Attributes) > 0 {
		_ = json.Unmarshal(listing.Attributes, &resp.Attributes)
	}
	if len(listing.Images) > 0 {
		_ = json.Unmarshal(listing.Images, &resp.Images)
	}
	if listing.Category != nil {
		resp.CategoryName = listing.Category.Name
	}
	if listing.User != nil {
		resp.OwnerName = listing.User.FullName
	}

	return resp
}
