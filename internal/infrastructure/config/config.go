package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

// Config holds all configuration for the zombiescan service.
type Config struct {
	GRPCPort      string
	HTTPPort      string
	DatabasePath  string
	Environment   string
	LogLevel      string
	JWTSecret     string
	InventoryPath string

	KafkaBroker        string
	KafkaTLS           bool
	KafkaSASLMechanism string
	KafkaSASLUsername  string
	KafkaSASLPassword  string

	// Scorer selects the scoring strategy: "heuristic" or "hybrid".
	Scorer   string
	MLWeight float64

	// EventPublishMode selects how domain events reach Kafka: "outbox"
	// stages them in SQLite for the relay, "direct" writes to the broker
	// inline.
	EventPublishMode string

	// Regions scanned when a scan request names none.
	DefaultRegions []string

	Scoring service.ScoringProfile
	Bands   valueobject.TierBands
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		GRPCPort:           getEnv("GRPC_PORT", "8098"),
		HTTPPort:           getEnv("HTTP_PORT", "9098"),
		DatabasePath:       getEnv("DB_PATH", "zombiescan.db"),
		KafkaBroker:        getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTLS:           getEnvBool("KAFKA_TLS", false),
		KafkaSASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaSASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaSASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		InventoryPath:      getEnv("INVENTORY_PATH", "inventory.json"),
		Scorer:             getEnv("SCORER", "heuristic"),
		MLWeight:           getEnvFloat("ML_WEIGHT", 0.4),
		EventPublishMode:   getEnv("EVENT_PUBLISH_MODE", "outbox"),
		DefaultRegions:     getEnvList("SCAN_REGIONS", []string{"us-east-1"}),
		Scoring:            loadScoringProfile(),
		Bands:              loadTierBands(),
	}
}

// loadScoringProfile starts from the default weights and applies any
// per-weight environment overrides.
func loadScoringProfile() service.ScoringProfile {
	p := service.DefaultScoringProfile()
	p.BaseRate = getEnvFloat("SCORE_BASE_RATE", p.BaseRate)
	p.StoppedPenalty = getEnvFloat("SCORE_STOPPED_PENALTY", p.StoppedPenalty)
	p.MissingOwnerTagPenalty = getEnvFloat("SCORE_MISSING_OWNER_PENALTY", p.MissingOwnerTagPenalty)
	p.MissingEnvironmentTagPenalty = getEnvFloat("SCORE_MISSING_ENVIRONMENT_PENALTY", p.MissingEnvironmentTagPenalty)
	p.MissingNameTagPenalty = getEnvFloat("SCORE_MISSING_NAME_PENALTY", p.MissingNameTagPenalty)
	p.AgeThresholdDays = getEnvInt("SCORE_AGE_THRESHOLD_DAYS", p.AgeThresholdDays)
	p.AgePenalty = getEnvFloat("SCORE_AGE_PENALTY", p.AgePenalty)
	p.SizeWeight = getEnvFloat("SCORE_SIZE_WEIGHT", p.SizeWeight)
	p.SizeReasonThreshold = getEnvFloat("SCORE_SIZE_REASON_THRESHOLD", p.SizeReasonThreshold)
	p.RegionRateWeight = getEnvFloat("SCORE_REGION_RATE_WEIGHT", p.RegionRateWeight)
	p.RegionReasonThreshold = getEnvFloat("SCORE_REGION_REASON_THRESHOLD", p.RegionReasonThreshold)
	return p
}

func loadTierBands() valueobject.TierBands {
	b := valueobject.DefaultTierBands()
	b.High = getEnvFloat("TIER_HIGH", b.High)
	b.Medium = getEnvFloat("TIER_MEDIUM", b.Medium)
	b.Low = getEnvFloat("TIER_LOW", b.Low)
	return b
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
