package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetupReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=:9000\nREDIS_URL=localhost:6379\nSTRICT_RULES=true\nRECORD_CACHE_TTL=90s\nANALYSIS_MAX_VISITS=25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Setup(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.ServerPort)
	require.Equal(t, "localhost:6379", cfg.RedisUrl)
	require.True(t, cfg.StrictRules)
	require.Equal(t, 90*time.Second, cfg.RecordCacheTTL)
	require.Equal(t, 25, cfg.AnalysisMaxVisits)
	require.Equal(t, "tenuki", cfg.MongoDatabase, "unset keys keep defaults")
}

func TestSetupWithoutFile(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "archive")

	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ServerPort)
	require.Equal(t, ":8082", cfg.AnalysisPort)
	require.Equal(t, 10*time.Minute, cfg.RecordCacheTTL)
	require.Equal(t, "archive", cfg.MongoDatabase)
	require.False(t, cfg.IsLocalCors)
	require.Equal(t, 20, cfg.PageLimitMatches)
	require.Equal(t, 1000, cfg.MaxViewers)
}

func TestSetupRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.env")
	require.NoError(t, os.WriteFile(path, []byte("RECORD_CACHE_TTL=soon\n"), 0o600))

	_, err := Setup(path)
	require.Error(t, err)
}
