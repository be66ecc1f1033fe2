package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database engines
const (
	EnginePostgres  = "postgres"
	EngineSQLite    = "sqlite"
	EngineMemory    = "memory"
	EngineFirestore = "firestore"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		FrontendBaseURL  string
		WorkDir          string
		RollbarToken     string
		SendgridApiKey   string

		PasswordResetTimeoutDelta time.Duration

		Server    ServerConfig
		Database  DatabaseConfig
		Firestore FirestoreConfig
		Grades    GradesConfig
		Timer     TimerConfig
	}

	ServerConfig struct {
		Host                      string
		Address                   string
		DebugAddress              string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
		LoginRateLimit            int
		LoginRateWindow           time.Duration
		UserCacheTTL              time.Duration
		DisableReqLogs            bool
	}

	DatabaseConfig struct {
		Engine        string // postgres | sqlite | memory | firestore
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		SQLitePath    string
	}

	FirestoreConfig struct {
		ProjectID       string
		CredentialsFile string
	}

	GradesConfig struct {
		DefaultTarget   float64
		DefaultMaxScore float64
	}

	TimerConfig struct {
		Work           time.Duration
		ShortBreak     time.Duration
		LongBreak      time.Duration
		LongBreakEvery int
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
}

// NewConfig loads the configuration of the current ENV (DEV by default) from
// defaults, an optional `config/.env.<env>` file and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "StudyFlow")
	v.SetDefault("secretKey", "x8#d=!kq2+v3s9l$m0w@7fz&b^4rj(t6ye1hnc5_p)ug*ai")
	v.SetDefault("defaultFromEmail", "StudyFlow <noreply@localhost>")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 30*24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.loginRateLimit", 10)
	v.SetDefault("server.loginRateWindow", time.Minute)
	v.SetDefault("server.userCacheTTL", time.Minute)
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("database.engine", EnginePostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "studyflow")
	v.SetDefault("database.user", "studyflow")
	v.SetDefault("database.password", "studyflow")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "postgres")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.sqlitePath", "studyflow.db")

	v.SetDefault("firestore.projectID", "")
	v.SetDefault("firestore.credentialsFile", "")

	v.SetDefault("grades.defaultTarget", 90.0)
	v.SetDefault("grades.defaultMaxScore", 100.0)

	v.SetDefault("timer.work", 25*time.Minute)
	v.SetDefault("timer.shortBreak", 5*time.Minute)
	v.SetDefault("timer.longBreak", 15*time.Minute)
	v.SetDefault("timer.longBreakEvery", 4)

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
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	fromEmail, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatalf("config.defaultFromEmail: %v", err)
	}

	return &Config{
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("testMode"),
		Env:                       env,
		Build:                     v.GetString("build"),
		AppName:                   v.GetString("appName"),
		SecretKey:                 v.GetString("secretKey"),
		DefaultFromEmail:          *fromEmail,
		FrontendBaseURL:           v.GetString("frontendBaseURL"),
		WorkDir:                   wd,
		RollbarToken:              v.GetString("rollbarToken"),
		SendgridApiKey:            v.GetString("sendgridApiKey"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			Address:                   v.GetString("server.address"),
			DebugAddress:              v.GetString("server.debugAddress"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
			ShutdownTimeout:           v.GetDuration("server.shutdownTimeout"),
			LoginRateLimit:            v.GetInt("server.loginRateLimit"),
			LoginRateWindow:           v.GetDuration("server.loginRateWindow"),
			UserCacheTTL:              v.GetDuration("server.userCacheTTL"),
			DisableReqLogs:            v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
			SQLitePath:    v.GetString("database.sqlitePath"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       v.GetString("firestore.projectID"),
			CredentialsFile: v.GetString("firestore.credentialsFile"),
		},
		Grades: GradesConfig{
			DefaultTarget:   v.GetFloat64("grades.defaultTarget"),
			DefaultMaxScore: v.GetFloat64("grades.defaultMaxScore"),
		},
		Timer: TimerConfig{
			Work:           v.GetDuration("timer.work"),
			ShortBreak:     v.GetDuration("timer.shortBreak"),
			LongBreak:      v.GetDuration("timer.longBreak"),
			LongBreakEvery: v.GetInt("timer.longBreakEvery"),
		},
	}
}
