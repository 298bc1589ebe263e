package config

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Config struct {
	Env            string
	LogLevel       string
	ListenAddr     string
	DBType         string
	DBDSN          string
	FileUsers      string
	FileJournal    string
	FileGoals      string
	SurveysFile    string
	WebhookSecret  string
	AuthServiceURL string
	RetentionDays  int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			ListenAddr:     getEnv("LISTEN_ADDR", ":8088"),
			DBType:         getEnv("STORAGE_BACKEND", "file"),
			DBDSN:          getEnv("POSTGRES_DSN", ""),
			FileUsers:      getEnv("USERS_FILE", "data/users.json"),
			FileJournal:    getEnv("JOURNAL_FILE", "data/journal.json"),
			FileGoals:      getEnv("GOALS_FILE", "data/goals.json"),
			SurveysFile:    getEnv("SURVEYS_FILE", ""),
			WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
			AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
			RetentionDays:  getEnvInt("JOURNAL_RETENTION_DAYS", 30),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileUsers == "" || c.FileJournal == "" || c.FileGoals == "") {
		return errors.New("File storage requires USERS_FILE, JOURNAL_FILE and GOALS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.WebhookSecret == "" && c.AuthServiceURL == "" {
		return errors.New("WEBHOOK_SECRET or AUTH_SERVICE_URL is required outside development")
	}
	if c.RetentionDays < 1 {
		return errors.New("JOURNAL_RETENTION_DAYS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func loadDotEnv() error {
	f, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	return applyEnvFile(f)
}

func applyEnvFile(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if kv := splitKV(line); len(kv) == 2 {
			os.Setenv(kv[0], kv[1])
		}
	}
	return sc.Err()
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
