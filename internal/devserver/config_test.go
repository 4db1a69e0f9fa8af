package devserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"addr":":9999","token_ttl":"2h","secret_key":"from-json"}`), 0o600))

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			want: Config{Addr: ":8080", SecretKey: "dev-secret", TokenTTL: 24 * time.Hour, LogLevel: "info"},
		},
		{
			name: "json then flags",
			args: []string{"-c", path, "-k", "from-flag", "-t", "30"},
			want: Config{Addr: ":9999", SecretKey: "from-flag", TokenTTL: 30 * time.Minute, LogLevel: "info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(tt.args)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, *got))
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-t", "soon"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}
