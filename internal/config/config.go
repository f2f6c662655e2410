package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=retail_bank_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string
	ChannelID     string
	ChannelKey    string
	BankPIN       string

	MaxActiveCredits  int
	BankPayDeadline   time.Duration
	CallbackTimeout   time.Duration
	CreditSweepEvery  time.Duration
	InvestSweepEvery  time.Duration
	PaymentSweepEvery time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		DatabaseDSN:   normalizeConnectionString(envOr("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir: envOr("MIGRATIONS_DIR", "migrations"),
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		ChannelID:     envOr("CHANNEL_ID", "BankApp"),
		ChannelKey:    envOr("CHANNEL_KEY", "BankAppKey001"),
		BankPIN:       envOr("BANK_PIN", "0000"),
	}

	maxCredits, err := envIntOr("MAX_ACTIVE_CREDITS", 3)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxActiveCredits = maxCredits

	payDeadlineDays, err := envIntOr("BANK_PAY_DEADLINE_DAYS", 365*5)
	if err != nil {
		return Config{}, err
	}
	cfg.BankPayDeadline = time.Duration(payDeadlineDays) * 24 * time.Hour

	cfg.CallbackTimeout, err = envDurationOr("CALLBACK_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.CreditSweepEvery, err = envDurationOr("CREDIT_SWEEP_EVERY", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.InvestSweepEvery, err = envDurationOr("INVESTMENT_SWEEP_EVERY", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.PaymentSweepEvery, err = envDurationOr("PAYMENT_SWEEP_EVERY", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envIntOr(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envDurationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

// normalizeConnectionString converts .NET-style "Key=Value;..." connection
// strings into the libpq keyword format.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
