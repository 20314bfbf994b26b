package config

const (
	EnvPrefix = "novamart"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultSQLiteFile = "database.sqlite"

	EnvDBDSN  = "NOVAMART_DB_DSN"
	EnvDBHost = "NOVAMART_DB_HOST"
	EnvDBUser = "NOVAMART_DB_USER"
	EnvDBName = "NOVAMART_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
