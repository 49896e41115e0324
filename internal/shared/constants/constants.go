package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID     = "user_id"
	ContextKeyUserRole   = "user_role"
	ContextKeyCustomerID = "customer_id"
	ContextKeyRequestID  = "request_id"

	// Database table names
	TableSubscriptionPacks  = "subscription_packs"
	TableSubscriptions      = "subscriptions"
	TableSubscriptionEvents = "subscription_events"
	TableCustomers          = "customers"

	// Redis key prefixes
	RedisKeyCustomerLock = "licensehub:lock:customer:"
	RedisKeyRateLimit    = "licensehub:ratelimit:"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
