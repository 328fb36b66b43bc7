package constants

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	TenantIDKey  ContextKey = "tenantID"
	UserIDKey    ContextKey = "userID"
	RequestIDKey ContextKey = "requestID"
)
