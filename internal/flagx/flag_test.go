package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "http://localhost:8080"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "x"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value kept",
			args:    []string{"-d"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-a", "-l", "debug"},
			allowed: []string{"-a", "-l"},
			want:    []string{"-a", "-l", "debug"},
		},
		{
			name:    "equals value that looks like a flag",
			args:    []string{"-config=--weird.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--weird.json"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-s", "memory", "-s", "sqlite"},
			allowed: []string{"-s"},
			want:    []string{"-s", "memory", "-s", "sqlite"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigFile([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigFile([]string{"-a", "x", "-config", "/path/long.json"}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, ConfigFile([]string{"-a", "http://x", "-l", "debug"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/2.json", ConfigFile([]string{"-c", "/1.json", "-config", "/2.json"}))
	})
}
