package markdown

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"paragraph", "Hello events", "<p>Hello events</p>"},
		{"emphasis", "*soon*", "<em>soon</em>"},
		{"raw html passes through", `<div class="lead">x</div>`, `<div class="lead">x</div>`},
		{"heading id", "## Programme", `<h2 id="programme">Programme</h2>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
			}
		})
	}
}

func TestFileToHTML(t *testing.T) {
	fsys := fstest.MapFS{
		"data/en/sample1.md": &fstest.MapFile{Data: []byte("Lorem **ipsum**")},
	}

	got, err := FileToHTML(fsys, "data/en/sample1.md")
	if err != nil {
		t.Fatalf("FileToHTML: %v", err)
	}
	if !strings.Contains(got, "<strong>ipsum</strong>") {
		t.Errorf("unexpected output %q", got)
	}

	if _, err := FileToHTML(fsys, "data/fr/sample1.md"); err == nil {
		t.Error("expected error for missing file")
	}
}
