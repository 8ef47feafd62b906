package config

const (
	// EnvPrefix namespaces every environment variable this service reads.
	EnvPrefix = "wms"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "WMS_DB_DSN"
	EnvDBHost = "WMS_DB_HOST"
	EnvDBUser = "WMS_DB_USER"
	EnvDBName = "WMS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
