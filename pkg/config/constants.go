package config

const (
	// EnvPrefix is the envconfig prefix; tags carry the full name so the
	// prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)
