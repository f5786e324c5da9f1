package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultOllamaBaseURL is the inference server used when none is configured.
const DefaultOllamaBaseURL = "http://172.16.206.31:11434"

const defaultMaxUploadBytes int64 = 10 << 20

// Config aggregates every setting of the service.
type Config struct {
	Server    ServerConfig
	Inference InferenceConfig
	Chat      ChatConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Inference: loadInferenceConfig(),
		Chat:      chat,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// ":8080" and "127.0.0.1:8080" are taken as-is.
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// InferenceConfig points at the Ollama server.
type InferenceConfig struct {
	BaseURL string
}

func loadInferenceConfig() InferenceConfig {
	return InferenceConfig{
		BaseURL: strings.TrimRight(getEnvOrDefault("OLLAMA_BASE_URL", DefaultOllamaBaseURL), "/"),
	}
}

// ChatConfig controls the browser-facing chat surface.
type ChatConfig struct {
	MaxUploadBytes int64
	SecureCookie   bool
}

func loadChatConfig() (ChatConfig, error) {
	maxUpload := defaultMaxUploadBytes
	if override, err := parseOptionalIntEnv("CHAT_MAX_UPLOAD_BYTES"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return ChatConfig{}, fmt.Errorf("invalid CHAT_MAX_UPLOAD_BYTES value %d", *override)
		}
		maxUpload = int64(*override)
	}

	secure, err := parseBoolEnv("CHAT_COOKIE_SECURE", false)
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{MaxUploadBytes: maxUpload, SecureCookie: secure}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
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
