package config

import (
	"os"
	"strconv"
	"time"
)

// Game policy knobs. Values come from the environment with the reference
// policy as fallback, so a deployment can tune them without a rebuild.

func MinBetAmount() float64 {
	return envFloat("MIN_BET_AMOUNT", 10)
}

func MinDeposit() float64 {
	return envFloat("MIN_DEPOSIT", 100)
}

func MinWithdrawal() float64 {
	return envFloat("MIN_WITHDRAWAL", 200)
}

func RoundDuration() time.Duration {
	return envDuration("ROUND_DURATION", 3*time.Minute)
}

func AdminToken() string {
	return os.Getenv("ADMIN_TOKEN")
}

func SettleWebhookURL() string {
	return os.Getenv("SETTLE_WEBHOOK_URL")
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
