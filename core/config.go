package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env              string
		Debug            bool
		TestMode         bool
		Build            string
		AppName          string
		SecretKey        string
		RollbarToken     string
		ExpiringSoonDays int

		JWTExpirationDelta time.Duration

		Server   ServerConfig
		Database DatabaseConfig
		Uploads  UploadsConfig
		Mail     MailConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine string // mongo | postgres | memory
		URI    string
		Name   string
	}

	UploadsConfig struct {
		Backend string // disk | s3
		Dir     string
		BaseURL string
		MaxSize int64
		S3      S3Config
	}

	S3Config struct {
		Bucket       string
		Region       string
		Endpoint     string
		AccessKey    string
		SecretKey    string
		UsePathStyle bool
	}

	MailConfig struct {
		DefaultFromEmail string
		SendgridApiKey   string
	}
)

const (
	EngineMongo    = "mongo"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"

	UploadsDisk = "disk"
	UploadsS3   = "s3"
)

// NewConfig loads the configuration of the current ENV (DEV by default).
// Values come from the environment, optionally seeded by config/.env.<env>.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "GymDesk")
	v.SetDefault("secretKey", "k2t8-s9e)aqx$+41=gym&d3sk(h!x)#*r7(#yg4h^$cegm2emy")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("expiringSoonDays", 10)
	v.SetDefault("jwtExpirationDelta", 30*24*time.Hour)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", EngineMemory)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gymdesk")

	v.SetDefault("uploads.backend", UploadsDisk)
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.baseURL", "/uploads")
	v.SetDefault("uploads.maxSize", int64(10<<20))
	v.SetDefault("uploads.s3.bucket", "")
	v.SetDefault("uploads.s3.region", "us-east-1")
	v.SetDefault("uploads.s3.endpoint", "")
	v.SetDefault("uploads.s3.accessKey", "")
	v.SetDefault("uploads.s3.secretKey", "")
	v.SetDefault("uploads.s3.usePathStyle", true)

	v.SetDefault("mail.defaultFromEmail", "noreply@localhost")
	v.SetDefault("mail.sendgridApiKey", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:                env,
		Debug:              v.GetBool("debug"),
		TestMode:           v.GetBool("testMode"),
		Build:              v.GetString("build"),
		AppName:            v.GetString("appName"),
		SecretKey:          v.GetString("secretKey"),
		RollbarToken:       v.GetString("rollbarToken"),
		ExpiringSoonDays:   v.GetInt("expiringSoonDays"),
		JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine: strings.ToLower(v.GetString("database.engine")),
			URI:    v.GetString("database.uri"),
			Name:   v.GetString("database.name"),
		},
		Uploads: UploadsConfig{
			Backend: strings.ToLower(v.GetString("uploads.backend")),
			Dir:     v.GetString("uploads.dir"),
			BaseURL: v.GetString("uploads.baseURL"),
			MaxSize: v.GetInt64("uploads.maxSize"),
			S3: S3Config{
				Bucket:       v.GetString("uploads.s3.bucket"),
				Region:       v.GetString("uploads.s3.region"),
				Endpoint:     v.GetString("uploads.s3.endpoint"),
				AccessKey:    v.GetString("uploads.s3.accessKey"),
				SecretKey:    v.GetString("uploads.s3.secretKey"),
				UsePathStyle: v.GetBool("uploads.s3.usePathStyle"),
			},
		},
		Mail: MailConfig{
			DefaultFromEmail: v.GetString("mail.defaultFromEmail"),
			SendgridApiKey:   v.GetString("mail.sendgridApiKey"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: debug off, memory engine, fixed secret.
func NewTestConfig() *Config {
	return &Config{
		Env:                "TEST",
		TestMode:           true,
		Build:              "test",
		AppName:            "GymDesk",
		SecretKey:          "test-secret",
		ExpiringSoonDays:   10,
		JWTExpirationDelta: 30 * 24 * time.Hour,
		Database:           DatabaseConfig{Engine: EngineMemory},
		Uploads:            UploadsConfig{Backend: UploadsDisk, BaseURL: "/uploads", MaxSize: 10 << 20},
		Mail:               MailConfig{DefaultFromEmail: "noreply@localhost"},
	}
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.Mail.DefaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.Mail.DefaultFromEmail}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}
