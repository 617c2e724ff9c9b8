package config

import (
	"reflect"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment can't leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"FUNCTIONS_CUSTOMHANDLER_PORT", "PORT", "QUEUE_BACKEND", "QUOTE_TIMEOUT",
		"EVENT_HUB_CONN_STR", "EVENT_HUB_NAME", "REDIS_URL", "REDIS_STREAM",
		"KAFKA_BROKERS", "KAFKA_TOPIC",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_EventHubDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENT_HUB_CONN_STR", "Endpoint=sb://ns.servicebus.windows.net/;SharedAccessKeyName=k;SharedAccessKey=v")
	t.Setenv("EVENT_HUB_NAME", "stocks")

	cfg, err := load(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d; want 8080", cfg.HTTPPort)
	}
	if cfg.QuoteTimeout != 10*time.Second {
		t.Errorf("QuoteTimeout = %v; want 10s", cfg.QuoteTimeout)
	}
	if cfg.Queue.Backend != BackendEventHub || cfg.Queue.Name != "stocks" {
		t.Errorf("Queue = %+v", cfg.Queue)
	}
}

func TestLoad_MissingQueueSettingsIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := load(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Queue.ConnectionString != "" || cfg.Queue.Name != "" {
		t.Errorf("Queue = %+v; want empty credentials", cfg.Queue)
	}
}

func TestLoad_CustomHandlerPortWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUNCTIONS_CUSTOMHANDLER_PORT", "7071")
	t.Setenv("PORT", "9000")

	cfg, err := load([]string{"-port", "1234"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != 7071 {
		t.Errorf("HTTPPort = %d; want 7071", cfg.HTTPPort)
	}
}

func TestLoad_IgnoresTestFlags(t *testing.T) {
	clearEnv(t)

	cfg, err := load([]string{"-test.v", "-test.run=TestX", "-port", "5000"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != 5000 {
		t.Errorf("HTTPPort = %d; want 5000", cfg.HTTPPort)
	}
}

func TestLoad_Backends(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_TOPIC", "quotes")

	cfg, err := load([]string{"-queue-backend", "redis"})
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	want := Queue{Backend: BackendRedis, ConnectionString: "redis://localhost:6379/0", Name: "stocks:quotes"}
	if !reflect.DeepEqual(cfg.Queue, want) {
		t.Errorf("redis Queue = %+v; want %+v", cfg.Queue, want)
	}

	t.Setenv("QUEUE_BACKEND", "KAFKA")
	cfg, err = load(nil)
	if err != nil {
		t.Fatalf("kafka: %v", err)
	}
	want = Queue{Backend: BackendKafka, Name: "quotes", Brokers: []string{"k1:9092", "k2:9092"}}
	if !reflect.DeepEqual(cfg.Queue, want) {
		t.Errorf("kafka Queue = %+v; want %+v", cfg.Queue, want)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "eighty"}},
		{"bad timeout", map[string]string{"QUOTE_TIMEOUT": "soon"}},
		{"unknown backend", map[string]string{"QUEUE_BACKEND": "sqs"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			if _, err := load(nil); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	in := " a , ,b ,c"
	got := splitAndTrim(in, ",")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitAndTrim = %v; want %v", got, want)
	}
}
