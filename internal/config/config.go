package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Speech   SpeechConfig
	Profile  ProfileConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	SessionBackend     string // "memory" or "redis"
	AuditTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host          string
	Port          int
	Email         string
	Password      string
	SenderName    string
	FeedbackInbox string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
}

type AIConfig struct {
	LLMProvider        string // "cortex" or "ollama"
	CortexBaseURL      string
	CortexAPIKey       string
	OllamaBaseURL      string
	OllamaModel        string
	Embedding768Model  string
	Embedding1024Model string
}

type SpeechConfig struct {
	VoiceID      string
	SpeakingRate float64
	Language     string
}

type ProfileConfig struct {
	SkillsPath   string
	TimelinePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionBackend:     getEnv("SESSION_BACKEND", "memory"),
			AuditTopic:         getEnv("CHAT_AUDIT_TOPIC_NAME", "CHAT_AUDIT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_HOST", ""),
			Port:          getEnvAsInt("SMTP_PORT", 587),
			Email:         getEnv("SMTP_EMAIL", ""),
			Password:      getEnv("SMTP_PASSWORD", ""),
			SenderName:    getEnv("SMTP_SENDER_NAME", "CV Chatbot"),
			FeedbackInbox: getEnv("FEEDBACK_INBOX", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:        getEnv("LLM_PROVIDER", "cortex"),
			CortexBaseURL:      getEnv("CORTEX_BASE_URL", ""),
			CortexAPIKey:       getEnv("CORTEX_API_KEY", ""),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
			Embedding768Model:  getEnv("EMBEDDING_768_MODEL", "text-embedding-004"),
			Embedding1024Model: getEnv("EMBEDDING_1024_MODEL", "mxbai-embed-large"),
		},
		Speech: SpeechConfig{
			VoiceID:      getEnv("TTS_VOICE_ID", "alloy"),
			SpeakingRate: getEnvAsFloat("TTS_SPEAKING_RATE", 1.0),
			Language:     getEnv("STT_LANGUAGE_CODE", "en"),
		},
		Profile: ProfileConfig{
			SkillsPath:   getEnv("SKILLS_JSON_PATH", "docs/skills.json"),
			TimelinePath: getEnv("TIMELINE_JSON_PATH", "docs/timeline.json"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
