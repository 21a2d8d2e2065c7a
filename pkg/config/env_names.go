package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LUCKYEGG_DB_DSN"
	EnvDBHost = "LUCKYEGG_DB_HOST"
	EnvDBUser = "LUCKYEGG_DB_USER"
	EnvDBName = "LUCKYEGG_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
