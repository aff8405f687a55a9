package config_test

import (
	"testing"

	"access-analyzer/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 32, cfg.Server.BodyLimitMB)
	assert.Equal(t, "access-exports", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "USER_NAME", cfg.Access.UserColumn)
	assert.Equal(t, "MAIN_GROUP", cfg.Access.MainGroupColumn)
	assert.Equal(t, "ADDL_GROUP", cfg.Access.AddlGroupColumn)
	assert.Equal(t, "JNUSER", cfg.Access.SubjectColumn)
	assert.Equal(t, "VHFROM", cfg.Access.AccessColumn)
	assert.Equal(t, "GR", cfg.Access.GroupPrefix)
	assert.Equal(t, "*PUBLIC", cfg.Access.PublicMarker)
	assert.Equal(t, 5, cfg.Access.TopN)
	assert.Equal(t, "incoming/", cfg.Access.IncomingPrefix)
	assert.Equal(t, "reports/", cfg.Access.ReportsPrefix)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ACCESS_GROUP_PREFIX", "GRP")
	t.Setenv("ACCESS_TOP_N", "10")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "GRP", cfg.Access.GroupPrefix)
	assert.Equal(t, 10, cfg.Access.TopN)
}
