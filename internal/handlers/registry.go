package handlers

// AppHandlers holds every handler the router registers.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ListingHandler      *ListingHandler
	CategoryHandler     *CategoryHandler
	ChatHandler         *ChatHandler
	NotificationHandler *NotificationHandler
	PlanHandler         *PlanHandler
	PaymentHandler      *PaymentHandler
	VerificationHandler *VerificationHandler
	ContentHandler      *ContentHandler
	AdminHandler        *AdminHandler
	HealthHandler       *HealthHandler
}
