package dto

import "gebeya_backend/internal/models"

type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"omitempty,min=9" validate:"omitempty,eth-phone"`
	Password    string `json:"password" binding:"required,min=8"`
	AccountType string `json:"account_type" binding:"omitempty,oneof=individual company" validate:"omitempty,is-account-type"`
	CompanyName string `json:"company_name"`
}

type LoginRequest struct {
	// Identifier is an email address or a phone number.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type VerifyOTPRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Code   string `json:"code" binding:"required,len=6"`
}

type ResendOTPRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

type ResetPasswordRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type UserResponse struct {
	ID               string             `json:"id"`
	FullName         string             `json:"full_name"`
	Email            string             `json:"email,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	Role             models.UserRole    `json:"role"`
	AccountType      models.AccountType `json:"account_type"`
	CompanyName      string             `json:"company_name,omitempty"`
	IsVerified       bool               `json:"is_verified"`
	SubscriptionPlan string             `json:"subscription_plan,omitempty"`
}

// UserFromModel maps a user row to its API shape.
func UserFromModel(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:               user.ID,
		FullName:         user.FullName,
		Role:             user.Role,
		AccountType:      user.AccountType,
		CompanyName:      user.CompanyName,
		IsVerified:       user.IsVerified,
		SubscriptionPlan: user.SubscriptionPlan,
	}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	if user.Phone != nil {
		resp.Phone = *user.Phone
	}
	return resp
}
