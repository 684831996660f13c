package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	CardsPath       string
	DBPath          string
	LogLevel        string
	GoogleAPIKey    string
	GeminiModel     string
	QuizCount       int
	NoteCharLimit   int
	ExamCharLimit   int
	LectureLimit    int
	MaxUploadMB     int
	GenerateTimeout time.Duration
	TemplatesDir    string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		CardsPath:       envOr("CARDS_PATH", "medical_flashcards.json"),
		DBPath:          envOr("DB_PATH", "file:mediquiz.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		QuizCount:       envIntOr("QUIZ_COUNT", 5),
		NoteCharLimit:   envIntOr("NOTE_CHAR_LIMIT", 15000),
		ExamCharLimit:   envIntOr("EXAM_CHAR_LIMIT", 20000),
		LectureLimit:    envIntOr("LECTURE_CHAR_LIMIT", 30000),
		MaxUploadMB:     envIntOr("MAX_UPLOAD_MB", 50),
		GenerateTimeout: time.Duration(envIntOr("GENERATE_TIMEOUT_SECONDS", 120)) * time.Second,
		TemplatesDir:    envOr("TEMPLATES_DIR", "web/templates"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.CardsPath) == "" {
		problems = append(problems, "CARDS_PATH cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.QuizCount < 1 || c.QuizCount > 50 {
		problems = append(problems, fmt.Sprintf("QUIZ_COUNT must be between 1 and 50, got %d", c.QuizCount))
	}
	if c.NoteCharLimit < 1 {
		problems = append(problems, "NOTE_CHAR_LIMIT must be positive")
	}
	if c.ExamCharLimit < 1 {
		problems = append(problems, "EXAM_CHAR_LIMIT must be positive")
	}
	if c.LectureLimit < 1 {
		problems = append(problems, "LECTURE_CHAR_LIMIT must be positive")
	}
	if c.MaxUploadMB < 1 {
		problems = append(problems, "MAX_UPLOAD_MB must be positive")
	}
	if c.GenerateTimeout <= 0 {
		problems = append(problems, "GENERATE_TIMEOUT_SECONDS must be positive")
	}
	if strings.TrimSpace(c.TemplatesDir) == "" {
		problems = append(problems, "TEMPLATES_DIR cannot be empty")
	} else if info, err := os.Stat(c.TemplatesDir); err != nil || !info.IsDir() {
		problems = append(problems, fmt.Sprintf("TEMPLATES_DIR %q is not a directory", c.TemplatesDir))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AIEnabled reports whether a model API key is configured.
func (c Config) AIEnabled() bool {
	return c.GoogleAPIKey != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
