package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	Length      int    `yaml:"length"`
	TTL         string `yaml:"ttl"`
	MaxAttempts int    `yaml:"max_attempts"`
	// LockTTL bounds the per-identity registration lock; it only needs to
	// outlive a single check-then-create pass.
	LockTTL string `yaml:"lock_ttl"`
}

type ResetConfig struct {
	TTL         string `yaml:"ttl"`
	FrontendURL string `yaml:"frontend_url"`
}

type PhoneConfig struct {
	Prefix         string `yaml:"prefix"`
	NationalDigits int    `yaml:"national_digits"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Reset    ResetConfig    `yaml:"reset"`
	Phone    PhoneConfig    `yaml:"phone"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port                string
	GinMode             string
	DSN                 string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	JWTSecret           string
	JWTIssuer           string
	AccessTTL           time.Duration
	RefreshTTL          time.Duration
	OTPLength           int
	OTPTTL              time.Duration
	MaxPendingAttempts  int
	RegistrationLockTTL time.Duration
	ResetTokenTTL       time.Duration
	FrontendURL         string
	PhonePrefix         string
	PhoneNationalDigits int
	TwilioSID           string
	TwilioToken         string
	TwilioFrom          string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	SMTPFrom            string
	CasbinModelPath     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Reset.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	lockTTL := 10 * time.Second
	if configFile.OTP.LockTTL != "" {
		lockTTL, err = time.ParseDuration(configFile.OTP.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid registration lock TTL: %w", err)
		}
	}

	port := configFile.App.Port
	if port <= 0 {
		port = 8080
	}

	otpLength := configFile.OTP.Length
	if otpLength <= 0 {
		otpLength = 5
	}

	maxAttempts := configFile.OTP.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	prefix := configFile.Phone.Prefix
	if prefix == "" {
		prefix = "+91"
	}

	digits := configFile.Phone.NationalDigits
	if digits <= 0 {
		digits = 10
	}

	return &Config{
		Port:                fmt.Sprintf("%d", port),
		GinMode:             configFile.App.GinMode,
		DSN:                 configFile.Database.DSN,
		RedisAddr:           configFile.Redis.Addr,
		RedisPassword:       configFile.Redis.Password,
		RedisDB:             configFile.Redis.DB,
		JWTSecret:           env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:           configFile.JWT.Issuer,
		AccessTTL:           accTTL,
		RefreshTTL:          refTTL,
		OTPLength:           otpLength,
		OTPTTL:              otpTTL,
		MaxPendingAttempts:  maxAttempts,
		RegistrationLockTTL: lockTTL,
		ResetTokenTTL:       resetTTL,
		FrontendURL:         env("FRONTEND_URL", configFile.Reset.FrontendURL),
		PhonePrefix:         prefix,
		PhoneNationalDigits: digits,
		TwilioSID:           env("TWILIO_SID", configFile.Twilio.AccountSID),
		TwilioToken:         env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:          env("TWILIO_PHONE_NUMBER", configFile.Twilio.FromNumber),
		SMTPHost:            configFile.SMTP.Host,
		SMTPPort:            configFile.SMTP.Port,
		SMTPUsername:        env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:        env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:            configFile.SMTP.From,
		CasbinModelPath:     configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
