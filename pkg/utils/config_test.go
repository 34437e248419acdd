package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	envSecret := strings.Repeat("e", MinSecretLength)
	t.Setenv("JWT_SECRET", envSecret)

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, 10, config.App.PageSize)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, 24*time.Hour, config.JWT.AccessTTL)
	assert.Equal(t, 720*time.Hour, config.JWT.RefreshTTL)
	assert.Equal(t, 72*time.Hour, config.Confirmation.TTL)
	assert.Equal(t, envSecret, config.Confirmation.Secret, "confirmation secret falls back to JWT secret")
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	jwtSecret := strings.Repeat("j", MinSecretLength)
	codeSecret := strings.Repeat("c", MinSecretLength+8)
	content := "PORT=9090\nDB_NAME=reviews\nJWT_SECRET=" + jwtSecret + "\nCONFIRMATION_SECRET=" + codeSecret +
		"\nCONFIRMATION_TTL=15m\nSMTP_HOST=smtp.example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.App.Port)
	assert.Equal(t, "reviews", config.Database.Name)
	assert.Equal(t, jwtSecret, config.JWT.Secret)
	assert.Equal(t, codeSecret, config.Confirmation.Secret)
	assert.Equal(t, 15*time.Minute, config.Confirmation.TTL)
	assert.Equal(t, "smtp.example.com", config.Email.Host)
	assert.Equal(t, 587, config.Email.Port)
}

func TestLoadConfig_RejectsWeakSecrets(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	tests := []struct {
		name         string
		jwtSecret    string
		codeSecret   string
		wantContains string
	}{
		{"both unset", "", "", "JWT_SECRET is not set"},
		{"jwt unset with code secret", "", strings.Repeat("c", MinSecretLength), "JWT_SECRET is not set"},
		{"jwt too short", "short", "", "JWT_SECRET must be at least"},
		{"code secret too short", strings.Repeat("j", MinSecretLength), "codes", "CONFIRMATION_SECRET must be at least"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.jwtSecret)
			t.Setenv("CONFIRMATION_SECRET", tt.codeSecret)

			config, err := LoadConfig(missing)
			require.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}
