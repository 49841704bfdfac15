package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "catalogue"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "CATALOGUE_APP_ENV"
	EnvAppPort = "CATALOGUE_APP_PORT"

	EnvDBDSN  = "CATALOGUE_DB_DSN"
	EnvDBHost = "CATALOGUE_DB_HOST"
	EnvDBUser = "CATALOGUE_DB_USER"
	EnvDBName = "CATALOGUE_DB_NAME"

	EnvRedisURL = "CATALOGUE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
