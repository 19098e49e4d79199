package config

// EnvPrefix is the envconfig prefix; explicit envconfig tags on every field
// keep variable names stable regardless of struct layout.
const EnvPrefix = "VISIONCONNECT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "VISIONCONNECT_DB_DSN"
	EnvDBHost = "VISIONCONNECT_DB_HOST"
	EnvDBUser = "VISIONCONNECT_DB_USER"
	EnvDBName = "VISIONCONNECT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
