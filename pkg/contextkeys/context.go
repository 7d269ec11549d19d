package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// DBContextKey holds the request-scoped *gorm.DB in the gin context.
const DBContextKey = contextKey("db")
