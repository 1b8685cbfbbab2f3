package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdown(t *testing.T) {
	t.Run("Frontmatter", func(t *testing.T) {
		doc, err := ParseMarkdown(strings.NewReader("---\ntitle: Weekly review\ntags: [work]\n---\n\nBody text\n"))
		require.NoError(t, err)
		assert.Equal(t, "Weekly review", doc.Frontmatter["title"])
		assert.Equal(t, "Body text", doc.Content())
	})

	t.Run("CRLF", func(t *testing.T) {
		doc, err := ParseMarkdown(strings.NewReader("---\r\ntitle: Windows note\r\n---\r\nline\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "Windows note", doc.Frontmatter["title"])
		assert.Equal(t, "line", doc.Content())
	})

	t.Run("No Frontmatter", func(t *testing.T) {
		doc, err := ParseMarkdown(strings.NewReader("# Heading\n\ntext"))
		require.NoError(t, err)
		assert.Empty(t, doc.Frontmatter)
		assert.Equal(t, "# Heading\n\ntext", doc.Body)
	})

	t.Run("Empty Frontmatter", func(t *testing.T) {
		doc, err := ParseMarkdown(strings.NewReader("---\n---\ntext"))
		require.NoError(t, err)
		assert.Equal(t, "text", doc.Body)
	})

	t.Run("Unclosed", func(t *testing.T) {
		_, err := ParseMarkdown(strings.NewReader("---\ntitle: x\nbody"))
		assert.Error(t, err)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		_, err := ParseMarkdown(strings.NewReader("---\ntitle: [x\n---\nbody"))
		assert.ErrorContains(t, err, "failed to parse frontmatter")
	})
}

func TestDocument_Title(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"frontmatter wins", Document{Frontmatter: map[string]any{"title": "From FM"}, Body: "# Heading"}, "From FM"},
		{"heading", Document{Body: "intro\n#  Heading one \nmore"}, "Heading one"},
		{"inline markup", Document{Body: "# Hello *big* `world`"}, "Hello big world"},
		{"fenced code ignored", Document{Body: "```\n# not a heading\n```\n"}, "meeting-notes"},
		{"second level ignored", Document{Body: "## Sub"}, "meeting-notes"},
		{"non string title ignored", Document{Frontmatter: map[string]any{"title": 42}}, "meeting-notes"},
		{"file name", Document{}, "meeting-notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.Title("docs/meeting-notes.md"))
		})
	}
}
