package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Queue backends understood by queue.Open.
const (
	BackendEventHub = "eventhub"
	BackendRedis    = "redis"
	BackendKafka    = "kafka"
)

// Queue holds the target queue credentials. For Event Hubs ConnectionString is
// the namespace connection string, for Redis it is the redis:// URL. Kafka uses
// Brokers instead.
type Queue struct {
	Backend          string
	ConnectionString string
	Name             string
	Brokers          []string
}

type Config struct {
	HTTPPort     int
	QuoteTimeout time.Duration
	Queue        Queue
}

// Load reads environment variables and application flags (via a local FlagSet),
// strips out any -test.* flags, and validates the values that are present.
// Missing queue credentials are not an error here: they surface when the
// producer is opened for a request.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	// Fresh FlagSet so we don't collide with `go test` flags
	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	var httpPort int
	var backend string
	fs.IntVar(&httpPort, "port", 8080, "HTTP listen port")
	fs.StringVar(&backend, "queue-backend", getEnvOrDefault("QUEUE_BACKEND", BackendEventHub), "eventhub, redis or kafka")

	var appArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-test.") {
			continue
		}
		appArgs = append(appArgs, arg)
	}
	if err := fs.Parse(appArgs); err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort:     httpPort,
		QuoteTimeout: 10 * time.Second,
	}

	// The Functions host hands custom handlers their port here
	for _, key := range []string{"FUNCTIONS_CUSTOMHANDLER_PORT", "PORT"} {
		portEnv := os.Getenv(key)
		if portEnv == "" {
			continue
		}
		portVal, err := strconv.Atoi(portEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid %s env var: %v", key, err)
		}
		cfg.HTTPPort = portVal
		break
	}

	if v := os.Getenv("QUOTE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid QUOTE_TIMEOUT env var: %v", err)
		}
		cfg.QuoteTimeout = d
	}

	q, err := loadQueue(strings.ToLower(backend))
	if err != nil {
		return nil, err
	}
	cfg.Queue = q

	return cfg, nil
}

func loadQueue(backend string) (Queue, error) {
	q := Queue{Backend: backend}
	switch backend {
	case BackendEventHub:
		q.ConnectionString = os.Getenv("EVENT_HUB_CONN_STR")
		q.Name = os.Getenv("EVENT_HUB_NAME")
	case BackendRedis:
		q.ConnectionString = os.Getenv("REDIS_URL")
		q.Name = getEnvOrDefault("REDIS_STREAM", "stocks:quotes")
	case BackendKafka:
		q.Brokers = splitAndTrim(os.Getenv("KAFKA_BROKERS"), ",")
		q.Name = os.Getenv("KAFKA_TOPIC")
	default:
		return q, fmt.Errorf("unknown queue backend %q", backend)
	}
	return q, nil
}

// splitAndTrim splits s on sep, trims spaces, and drops empty entries.
func splitAndTrim(s, sep string) []string {
	parts := []string{}
	for _, p := range strings.Split(s, sep) {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
