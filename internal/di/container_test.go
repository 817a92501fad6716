package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixbridge/internal/domain/entity"
)

func writeTemplate(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fix.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLoadFixConfig_EmptyPathKeepsDefault(t *testing.T) {
	cfg, err := loadFixConfig("")

	require.NoError(t, err)
	assert.Nil(t, cfg.Template)
}

func TestLoadFixConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing file", filepath.Join(t.TempDir(), "absent.tmpl"), "failed to read prompt template"},
		{"bad template", writeTemplate(t, "{{.Fix"), "failed to parse prompt template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFixConfig(tt.path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewContainer_PromptTemplateFromEnv(t *testing.T) {
	t.Setenv("FIXBRIDGE_STATE_DIR", t.TempDir())
	t.Setenv("FIXBRIDGE_LOG_DIR", "")
	t.Setenv("FIXBRIDGE_PROMPT_TEMPLATE", writeTemplate(t, "{{.Fix}} => {{.Element}}"))

	c, err := NewContainer(context.Background(), Options{})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	result, err := c.Fix.Execute(context.Background(), entity.FixRequest{
		Element: &entity.ElementDescriptor{TagName: "SPAN"},
		Fix:     "hide it",
	})

	require.NoError(t, err)
	assert.Equal(t, "hide it => <span></span>", result.FormattedPrompt)
}

func TestNewContainer_BadPromptTemplate(t *testing.T) {
	t.Setenv("FIXBRIDGE_STATE_DIR", t.TempDir())
	t.Setenv("FIXBRIDGE_LOG_DIR", "")
	t.Setenv("FIXBRIDGE_PROMPT_TEMPLATE", filepath.Join(t.TempDir(), "absent.tmpl"))

	_, err := NewContainer(context.Background(), Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt template")
}
