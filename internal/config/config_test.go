package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "postgres://localhost:5432/melanoma_scan?sslmode=disable", cfg.PostgresURI)
	assert.Equal(t, "mongodb://localhost:27017/melanoma_scan", cfg.MongoURI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "static/uploads", cfg.UploadFolder)
	assert.Equal(t, "templates", cfg.TemplatesDir)
	assert.Equal(t, "chatbot.json", cfg.ChatbotDataPath)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "anthropic.claude-v2", cfg.BedrockModelID)
	assert.Equal(t, []string{"http://localhost:5000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.UseCloudinary())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("POSTGRES_URI", "postgres://user:pass@db:5432/scan")
	t.Setenv("MONGO_URI", "mongodb://db:27017/scan")
	t.Setenv("PORT", "8080")
	t.Setenv("UPLOAD_FOLDER", "/var/uploads")
	t.Setenv("BEDROCK_MODEL_ID", "anthropic.claude-v2:1")
	t.Setenv("ALLOWED_ORIGINS", "https://scan.example.com, https://www.scan.example.com")
	t.Setenv("ENV", "Production")

	cfg := Load()

	assert.Equal(t, "postgres://user:pass@db:5432/scan", cfg.PostgresURI)
	assert.Equal(t, "mongodb://db:27017/scan", cfg.MongoURI)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/var/uploads", cfg.UploadFolder)
	assert.Equal(t, "anthropic.claude-v2:1", cfg.BedrockModelID)
	assert.Equal(t, []string{"https://scan.example.com", "https://www.scan.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestUseCloudinary_RequiresAllThreeCredentials(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")

	assert.False(t, Load().UseCloudinary())

	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	assert.True(t, Load().UseCloudinary())
}
