package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Client  ClientConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadAddr("PORT", "8080")
	if err != nil {
		return nil, err
	}

	gateway, err := loadAddr("GATEWAY_PORT", "8081")
	if err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  ServerConfig{Addr: server},
		Gateway: GatewayConfig{Addr: gateway},
		Mongo:   loadMongoConfig(),
		Auth:    auth,
		Client:  client,
	}, nil
}

// ServerConfig describes the REST API listener.
type ServerConfig struct {
	Addr string
}

// GatewayConfig describes the WebSocket echo listener.
type GatewayConfig struct {
	Addr string
}

// loadAddr resolves a listen address from a port-style env var. Values like
// ":8080" or "127.0.0.1:8080" are passed through unchanged.
func loadAddr(key, fallback string) (string, error) {
	port := strings.TrimSpace(os.Getenv(key))
	if port == "" {
		port = fallback
	}

	if strings.Contains(port, ":") {
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid %s value: %q", key, port)
	}

	return ":" + port, nil
}

// MongoConfig describes the document store connection.
type MongoConfig struct {
	URI      string
	Database string
}

func loadMongoConfig() MongoConfig {
	return MongoConfig{
		URI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getEnvOrDefault("MONGODB_DATABASE", "echochat"),
	}
}

// AuthConfig describes token issuing. TokenTTLMin of zero issues tokens
// without an expiry claim, which was the observed legacy behavior; any
// positive value adds and enforces one.
type AuthConfig struct {
	Secret      string
	TokenTTLMin int
	BcryptCost  int
}

func loadAuthConfig() (AuthConfig, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	ttl := 0
	if v, err := parseOptionalIntEnv("AUTH_TOKEN_TTL_MIN"); err != nil {
		return AuthConfig{}, err
	} else if v != nil {
		if *v < 0 {
			return AuthConfig{}, fmt.Errorf("AUTH_TOKEN_TTL_MIN must not be negative")
		}
		ttl = *v
	}

	cost := 10
	if v, err := parseOptionalIntEnv("BCRYPT_COST"); err != nil {
		return AuthConfig{}, err
	} else if v != nil {
		cost = *v
	}

	return AuthConfig{Secret: secret, TokenTTLMin: ttl, BcryptCost: cost}, nil
}

// ClientConfig describes the client state store: where local state is
// persisted, which API it talks to and how long the simulated reply waits.
type ClientConfig struct {
	StatePath  string
	APIBaseURL string
	EchoDelay  time.Duration
}

func loadClientConfig() (ClientConfig, error) {
	delay := 500 * time.Millisecond
	if v, err := parseOptionalIntEnv("CLIENT_ECHO_DELAY_MS"); err != nil {
		return ClientConfig{}, err
	} else if v != nil {
		delay = time.Duration(*v) * time.Millisecond
	}

	return ClientConfig{
		StatePath:  getEnvOrDefault("CLIENT_STATE_PATH", "chat_state.json"),
		APIBaseURL: getEnvOrDefault("CLIENT_API_BASE_URL", "http://localhost:8080"),
		EchoDelay:  delay,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
