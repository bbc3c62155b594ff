package flagx

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "postgres://x", "-a", ":8080"},
			allowed: []string{"-d"},
			want:    []string{"-d", "postgres://x"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=blog.json", "-a", ":8080"},
			allowed: []string{"-config"},
			want:    []string{"-config=blog.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-s"},
			allowed: []string{"-s"},
			want:    []string{"-s"},
		},
		{
			name:    "dash-prefixed token is not a value",
			args:    []string{"-t", "-l", "debug"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "order and repeats preserved",
			args:    []string{"-a", ":1", "-c", "one.json", "-a", ":2"},
			allowed: []string{"-a", "-c"},
			want:    []string{"-a", ":1", "-c", "one.json", "-a", ":2"},
		},
		{
			name:    "empty input",
			args:    []string{},
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestFilterBoolArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"next token kept out", []string{"-reset", "blog.json", "-down"}, []string{"-reset", "-down"}},
		{"explicit value", []string{"-reset=false", "-d", "postgres://x"}, []string{"-reset=false"}},
		{"value flags dropped", []string{"-c", "blog.json"}, []string{}},
		{"empty input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterBoolArgs(tt.args, []string{"-reset", "-down"}))
		})
	}
}

func TestFilterBoolArgs_ParsesBothFlags(t *testing.T) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	reset := fs.Bool("reset", false, "")
	down := fs.Bool("down", false, "")

	err := fs.Parse(FilterBoolArgs([]string{"-reset", "-c", "blog.json", "-down"}, []string{"-reset", "-down"}))
	require.NoError(t, err)
	assert.True(t, *reset)
	assert.True(t, *down)
	assert.Empty(t, fs.Args())
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/blog/short.json", ConfigFile([]string{"-c", "/etc/blog/short.json"}))
	assert.Equal(t, "/etc/blog/long.json", ConfigFile([]string{"-a", ":9000", "-config", "/etc/blog/long.json"}))
	assert.Equal(t, "b.json", ConfigFile([]string{"-c", "a.json", "-config=b.json"}))
	assert.Empty(t, ConfigFile([]string{"-a", ":9000"}))
	assert.Empty(t, ConfigFile(nil))
}
