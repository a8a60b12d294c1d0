package config

// Configuration keys read by mergingtond. Values come from the environment,
// optionally populated from the dotenv file named by DotenvPathKey.
const (
	DotenvPathKey = "MERGINGTON_DOTENV_PATH"
	HostKey       = "MERGINGTON_HOST"
	PortKey       = "MERGINGTON_PORT"
	SeedFileKey   = "MERGINGTON_SEED_FILE"
	StaticDirKey  = "MERGINGTON_STATIC_DIR"
	LogLevelKey   = "MERGINGTON_LOG_LEVEL"
	APIURLKey     = "MERGINGTON_API_URL"
)

const (
	DefaultPort     = "8000"
	DefaultLogLevel = "info"
	DefaultAPIURL   = "http://localhost:8000"
)
