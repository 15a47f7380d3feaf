package config

import (
	"os"
	"strings"
)

type Config struct {
	PostgresURI     string
	MongoURI        string
	RedisURI        string
	Port            string
	UploadFolder    string
	TemplatesDir    string
	ChatbotDataPath string
	AWSRegion       string
	BedrockModelID  string
	AllowedOrigins  []string // CORS: from ALLOWED_ORIGINS, comma-separated
	Environment     string   // ENV: production, development, etc.

	// Optional Cloudinary backend for image storage. When all three are
	// set, uploads go to Cloudinary instead of the local upload folder.
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

func Load() *Config {
	return &Config{
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/melanoma_scan?sslmode=disable"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017/melanoma_scan"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:                getEnv("PORT", "5000"),
		UploadFolder:        getEnv("UPLOAD_FOLDER", "static/uploads"),
		TemplatesDir:        getEnv("TEMPLATES_DIR", "templates"),
		ChatbotDataPath:     getEnv("CHATBOT_DATA", "chatbot.json"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		BedrockModelID:      getEnv("BEDROCK_MODEL_ID", "anthropic.claude-v2"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5000")),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "melanoma_scan"),
	}
}

// UseCloudinary reports whether the Cloudinary image store is fully configured.
func (c *Config) UseCloudinary() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
