package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ADMIN_RECIPIENT_ID", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("OTP_TTL", "")
	t.Setenv("OTP_MAX_ATTEMPTS", "")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, 5, cfg.Auth.OTPMaxAttempts)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(1), cfg.Notifications.AdminRecipientID)
	assert.Equal(t, 60*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ADMIN_RECIPIENT_ID", "42")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("OTP_MAX_ATTEMPTS", "3")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, 3, cfg.Auth.OTPMaxAttempts)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(42), cfg.Notifications.AdminRecipientID)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("ADMIN_RECIPIENT_ID", "abc")
	t.Setenv("JWT_TTL", "soon")

	cfg := Load()

	assert.Equal(t, int64(1), cfg.Notifications.AdminRecipientID)
	assert.Equal(t, 60*time.Minute, cfg.Auth.TokenTTL)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "ems", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ems sslmode=disable", c.DSN())
}
