package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	assert := assert.New(t)

	t.Setenv("CONFIG_PATH", "../../configs/config.yaml")
	t.Setenv("API_BASE_URL", "https://api.example.com/api")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_MAX_REQUESTS_PER_SECOND", "12.5")
	t.Setenv("TG_TOKEN", "overrideToken")
	t.Setenv("BOT_ENABLED", "true")
	t.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	t.Setenv("SESSION_EXPIRATION_DAYS", "14")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WEB_ADDRESS", ":9999")
	t.Setenv("METRICS_ADDRESS", ":9191")

	cfg := Get()

	assert.Equal("https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(3*time.Second, cfg.API.Timeout)
	assert.Equal(float32(12.5), cfg.API.MaxRequestsPerSecond)
	assert.True(cfg.Bot.Enabled)
	assert.Equal("overrideToken", cfg.Bot.Token)
	assert.Equal("newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(14, cfg.DB.SessionExpirationInDays)
	assert.Equal(LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(":9999", cfg.Web.Address)
	assert.Equal(":9191", cfg.Metrics.Address)
}

func Test_Config_WhenSectionsMissing_ShouldUseDefaults(t *testing.T) {

	assert := assert.New(t)

	file := writeConfig(t, "api:\n  base_url: http://localhost:8000/api\ndb:\n  connection_string: test.db\n")

	cfg, err := Load(file)

	assert.NoError(err)
	assert.Equal(LevelInfo, cfg.Logger.LogLevel)
	assert.Equal(15*time.Second, cfg.API.Timeout)
	assert.True(cfg.API.ExtractSkillsAfterUpload)
	assert.Equal(":8080", cfg.Web.Address)
	assert.Equal("dashboard_visitor", cfg.Web.VisitorCookie)
	assert.Equal(30*time.Minute, cfg.Web.WorkspaceTTL)
	assert.Equal(int64(10<<20), cfg.Web.MaxUploadBytes)
	assert.Equal(7, cfg.DB.SessionExpirationInDays)
	assert.False(cfg.Bot.Enabled)
}

func Test_Config_WhenBaseURLInvalid_ShouldFail(t *testing.T) {

	file := writeConfig(t, "api:\n  base_url: not a url\ndb:\n  connection_string: test.db\n")

	_, err := Load(file)

	assert.ErrorContains(t, err, "invalid base_url")
}

func Test_Config_WhenBotEnabledWithoutToken_ShouldFail(t *testing.T) {

	file := writeConfig(t, "api:\n  base_url: http://localhost:8000/api\ndb:\n  connection_string: test.db\nbot:\n  enabled: true\n")

	_, err := Load(file)

	assert.ErrorContains(t, err, "BotConfig")
	assert.ErrorContains(t, err, "token")
}

func Test_Config_WhenLogLevelUnknown_ShouldFail(t *testing.T) {

	file := writeConfig(t, "logger:\n  log_level: LOUD\napi:\n  base_url: http://localhost:8000/api\ndb:\n  connection_string: test.db\n")

	_, err := Load(file)

	assert.ErrorContains(t, err, "unknown log_level")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}
