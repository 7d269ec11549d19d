package dto

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers       int64 `json:"total_users"`
	SubscribedUsers  int64 `json:"subscribed_users"`
	TotalListings    int64 `json:"total_listings"`
	PendingListings  int64 `json:"pending_listings"`
	ApprovedListings int64 `json:"approved_listings"`
	RejectedListings int64 `json:"rejected_listings"`
}

type AdminUsersQuery struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Banned   *bool  `form:"banned"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type UpdateProfileRequest struct {
	FullName    string  `json:"full_name" binding:"omitempty,min=2"`
	CompanyName *string `json:"company_name"`
}

// SystemConfigResponse reports which integrations are configured and the
// current feature flags. Secrets themselves are never returned.
type SystemConfigResponse struct {
	APIStatus    APIStatus    `json:"api_status"`
	FeatureFlags FeatureFlags `json:"feature_flags"`
}

type APIStatus struct {
	ChapaConfigured bool `json:"chapa_configured"`
	SMSConfigured   bool `json:"sms_configured"`
	EmailConfigured bool `json:"email_configured"`
}

type FeatureFlags struct {
	ForceModeration        bool `json:"force_moderation"`
	EnableSMSNotifications bool `json:"enable_sms_notifications"`
}

type UpdateSystemConfigRequest struct {
	FeatureFlags FeatureFlags `json:"feature_flags"`
}
