package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Document is a Markdown file split into its frontmatter and body.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// ParseMarkdown decodes r into a Document.
// Frontmatter is recognized only when the input starts with a "---" line.
func ParseMarkdown(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{Frontmatter: map[string]any{}}

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		doc.Body = string(data)
		return doc, nil
	}

	rest := data[len("---\n"):]
	var header []byte
	switch {
	case bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, []byte("---")):
		// empty frontmatter
		rest = bytes.TrimPrefix(bytes.TrimPrefix(rest, []byte("---")), []byte("\n"))
	default:
		end := bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return nil, errors.New("frontmatter started but no closing delimiter found")
		}
		header = rest[:end]
		rest = rest[end+len("\n---"):]
		rest = bytes.TrimPrefix(rest, []byte("\n"))
	}

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &doc.Frontmatter); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}
	doc.Body = string(rest)
	return doc, nil
}

// Title picks the note title: the "title" frontmatter key, then the first
// level-one heading, then the file name without extension.
func (d *Document) Title(filename string) string {
	if t, ok := d.Frontmatter["title"].(string); ok && strings.TrimSpace(t) != "" {
		return t
	}
	if h := firstHeading([]byte(d.Body)); h != "" {
		return h
	}
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Content returns the body with surrounding blank lines removed.
func (d *Document) Content() string {
	return strings.Trim(d.Body, "\n")
}

// firstHeading returns the text of the first level-one heading in src.
func firstHeading(src []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(string(nodeText(h, src)))
		if title == "" {
			return ast.WalkContinue, nil
		}
		return ast.WalkStop, nil
	})
	return title
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, src []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			out = append(out, t.Segment.Value(src)...)
			if t.SoftLineBreak() {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, nodeText(c, src)...)
	}
	return out
}
