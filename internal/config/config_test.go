package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  port: 8080
  gin_mode: release
database:
  dsn: "host=localhost user=auth dbname=auth sslmode=disable"
redis:
  addr: "localhost:6379"
  password: ""
  db: 0
jwt:
  secret: "test-secret"
  issuer: "accountsvc"
  access_ttl: "15m"
  refresh_ttl: "168h"
otp:
  length: 5
  ttl: "5m"
  max_attempts: 3
  lock_ttl: "30s"
reset:
  ttl: "15m"
  frontend_url: "http://localhost:3000"
phone:
  prefix: "+91"
  national_digits: 10
twilio:
  account_sid: "sid"
  auth_token: "token"
  from_number: "+15550001111"
smtp:
  host: "smtp.example.com"
  port: 587
  username: "mailer"
  password: "secret"
  from: "noreply@example.com"
casbin:
  model_path: "config/model.conf"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.OTPLength)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.MaxPendingAttempts)
	assert.Equal(t, 30*time.Second, cfg.RegistrationLockTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.Equal(t, "+91", cfg.PhonePrefix)
	assert.Equal(t, 10, cfg.PhoneNationalDigits)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
}

func TestLoadFrom_Defaults(t *testing.T) {
	minimal := `
jwt:
  secret: "s"
  issuer: "accountsvc"
  access_ttl: "15m"
  refresh_ttl: "168h"
otp:
  ttl: "5m"
reset:
  ttl: "15m"
`
	cfg, err := LoadFrom(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port, "port defaults when the yaml omits it")
	assert.Equal(t, 5, cfg.OTPLength, "OTP length defaults to 5 digits")
	assert.Equal(t, 3, cfg.MaxPendingAttempts, "attempt ceiling defaults to 3")
	assert.Equal(t, 10*time.Second, cfg.RegistrationLockTTL, "lock TTL defaults to seconds, not the OTP window")
	assert.Equal(t, "+91", cfg.PhonePrefix)
	assert.Equal(t, 10, cfg.PhoneNationalDigits)
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	bad := `
app:
  port: 8080
jwt:
  secret: "s"
  issuer: "accountsvc"
  access_ttl: "not-a-duration"
  refresh_ttl: "168h"
otp:
  ttl: "5m"
reset:
  ttl: "15m"
`
	_, err := LoadFrom(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access TTL")
}

func TestLoadFrom_InvalidLockTTL(t *testing.T) {
	bad := `
jwt:
  secret: "s"
  issuer: "accountsvc"
  access_ttl: "15m"
  refresh_ttl: "168h"
otp:
  ttl: "5m"
  lock_ttl: "soon"
reset:
  ttl: "15m"
`
	_, err := LoadFrom(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock TTL")
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	cfg, err := LoadFrom(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}
