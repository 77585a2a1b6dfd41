package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionHeaders(content string) []string {
	var sections []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, strings.Trim(line, "[]"))
		}
	}
	return sections
}

func TestWriteConfigOrdered(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, WriteConfigOrdered(cfg, configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	sections := sectionHeaders(string(content))
	require.NotEmpty(t, sections)
	assert.IsNonDecreasing(t, sections)
	assert.Contains(t, sections, "security.roles")

	var decoded Config
	require.NoError(t, toml.Unmarshal(content, &decoded))
	assert.Equal(t, cfg.Server, decoded.Server)
	assert.Equal(t, cfg.Security.Roles, decoded.Security.Roles)
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	err := WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml"))
	require.Error(t, err)
}

func TestSortTOMLSections(t *testing.T) {
	input := `# header

[server]
listen = '127.0.0.1:8087'

[logging]
level = 'info'

  [security.roles]
  editor = ['edit_appearance']

[database]
path = ''
[security]
role_header = 'X-Cookiemsg-Role'
`

	result := sortTOMLSections(input)

	assert.Equal(t, []string{
		"database",
		"logging",
		"security",
		"security.roles",
		"server",
	}, sectionHeaders(result))
	assert.True(t, strings.HasPrefix(result, "# header\n\n[database]"))
	assert.True(t, strings.HasSuffix(result, "'127.0.0.1:8087'\n"))
}
