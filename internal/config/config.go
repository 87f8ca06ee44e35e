package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	GenAI    *genAIConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"applyflow"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string        `envconfig:"APPLYFLOW_ADDRESS" default:":3000"`
	MetricsAddress  string        `envconfig:"APPLYFLOW_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string        `envconfig:"APPLYFLOW_BASE_URL" default:"http://localhost:3000"`
	LogLevel        string        `envconfig:"APPLYFLOW_LOG_LEVEL" default:"info"`
	ReviewInterval  time.Duration `envconfig:"APPLYFLOW_REVIEW_INTERVAL" default:"15s"`
	UploadMaxBytes  int64         `envconfig:"APPLYFLOW_UPLOAD_MAX_BYTES" default:"20971520"`
	UploadDir       string        `envconfig:"APPLYFLOW_UPLOAD_DIR" default:""`
	MigrationFolder string        `envconfig:"APPLYFLOW_MIGRATIONS_FOLDER" default:""`
	AllowedOrigins  []string      `envconfig:"APPLYFLOW_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// genAIConfig carries the Vertex AI credentials. The project is a startup
// precondition; without it the process must not come up.
type genAIConfig struct {
	Project  string `envconfig:"GOOGLE_CLOUD_PROJECT" required:"true"`
	Location string `envconfig:"GOOGLE_CLOUD_LOCATION" default:"us-central1"`
	Model    string `envconfig:"APPLYFLOW_GENAI_MODEL" default:"gemini-2.5-flash-lite"`
}

// New reads the configuration from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewDefault returns a configuration suitable for tests: a sqlite store and
// a placeholder project so no external service is contacted.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{Type: "sqlite", Name: ":memory:"},
		Service: &svcConfig{
			Address:        ":3000",
			MetricsAddress: ":8080",
			LogLevel:       "info",
			ReviewInterval: 15 * time.Second,
			UploadMaxBytes: 20 << 20,
		},
		GenAI: &genAIConfig{Project: "test-project", Location: "us-central1", Model: "gemini-2.5-flash-lite"},
	}
}
