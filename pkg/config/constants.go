package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "CAMPUSCLOSET"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "CAMPUSCLOSET_APP_ENV"
	EnvPort       = "CAMPUSCLOSET_APP_PORT"
	EnvDBDSN      = "CAMPUSCLOSET_DB_DSN"
	EnvDBHost     = "CAMPUSCLOSET_DB_HOST"
	EnvDBUser     = "CAMPUSCLOSET_DB_USER"
	EnvDBName     = "CAMPUSCLOSET_DB_NAME"
	EnvRedisURL   = "CAMPUSCLOSET_REDIS_URL"
	EnvJWTSecret  = "CAMPUSCLOSET_JWT_SECRET"
	EnvJWTIssuer  = "CAMPUSCLOSET_JWT_ISSUER"
	EnvJWTExpMins = "CAMPUSCLOSET_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
