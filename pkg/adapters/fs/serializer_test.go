package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/pkg/core"
)

func TestSerializerFor(t *testing.T) {
	registry := DefaultSerializers()

	tests := []struct {
		file   string
		format string
	}{
		{"notes.json", "json"},
		{"NOTES.JSON", "json"},
		{"notes.yaml", "yaml"},
		{"notes.yml", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := serializerFor(tt.file, registry)
			require.NoError(t, err)
			assert.Equal(t, tt.format, s.Format())
		})
	}

	_, err := serializerFor("notes", registry)
	assert.Error(t, err)
}

func TestJSONSerializer(t *testing.T) {
	s := NewJSONSerializer()
	notes := []core.Note{{ID: "2024-01-01T00:00:00.000Z", Title: "Hello world", Content: "<b>raw</b>"}}

	data, err := s.Serialize(notes)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"notes"`)

	parsed, err := s.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, notes, parsed)

	_, err = s.Parse(strings.NewReader(`{"notes":[]}garbage`))
	assert.Error(t, err, "trailing data must not parse")

	_, err = s.Parse(strings.NewReader(`{"notes":[]} {"notes":[]}`))
	assert.Error(t, err)

	_, err = s.Parse(strings.NewReader(`not json`))
	assert.ErrorContains(t, err, "invalid json")
}

func TestYAMLSerializer(t *testing.T) {
	s := NewYAMLSerializer()

	raw := `notes:
  - title: Shopping list
    content: |
      milk
      eggs
    id: "2024-01-01T00:00:00.000Z"
`
	parsed, err := s.Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Shopping list", parsed[0].Title)
	assert.Equal(t, "milk\neggs\n", parsed[0].Content)

	data, err := s.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, "notes: []\n", string(data))

	_, err = s.Parse(strings.NewReader("notes: [unterminated"))
	assert.ErrorContains(t, err, "invalid yaml")
}
