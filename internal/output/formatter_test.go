package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"TOON", FormatTOON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.file != nil {
		t.Error("file should be nil for stdout")
	}
	if !f.Colored() {
		t.Error("Colored() = false, want true")
	}
	if f.Format() != FormatText {
		t.Errorf("Format() = %q, want %q", f.Format(), FormatText)
	}
	if f.Writer() == nil {
		t.Error("Writer() should not be nil")
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "output.json")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if f.colored {
		t.Error("colored should be false when writing to file")
	}
	if err := f.Output(map[string]int{"a": 1}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), `"a": 1`) {
		t.Errorf("file content = %s", data)
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	_, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false)
	if err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable(
		"Summary",
		[]string{"Metric", "Value"},
		[][]string{
			{"Total", "10"},
			{"Passed", "8"},
		},
		[]string{"Success Rate", "80%"},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Summary", "METRIC", "VALUE", "Total", "10", "80%"} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderText() missing %q in output:\n%s", want, output)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable(
		"Data",
		[]string{"X", "Y"},
		[][]string{{"1", "2"}},
		[]string{"Total", "3"},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"## Data", "| X | Y |", "| --- | --- |", "| 1 | 2 |", "| Total | 3 |"} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderMarkdown() missing %q in output:\n%s", want, output)
		}
	}
}

func TestTableRenderData(t *testing.T) {
	t.Run("rows_as_maps", func(t *testing.T) {
		table := NewTable("", []string{"Name", "Count"}, [][]string{{"a", "1"}, {"b"}}, nil, nil)
		rows, ok := table.RenderData().([]map[string]string)
		if !ok {
			t.Fatalf("RenderData() type = %T", table.RenderData())
		}
		if len(rows) != 2 || rows[0]["Count"] != "1" {
			t.Errorf("RenderData() = %v", rows)
		}
		if _, ok := rows[1]["Count"]; ok {
			t.Error("short rows should omit missing columns")
		}
	})

	t.Run("explicit_data", func(t *testing.T) {
		data := struct{ N int }{N: 3}
		table := NewTable("", nil, nil, nil, data)
		if table.RenderData() != data {
			t.Errorf("RenderData() = %v, want %v", table.RenderData(), data)
		}
	})
}

func TestSectionRender(t *testing.T) {
	s := &Section{Title: "Warnings", Content: "2 error nodes"}

	var text bytes.Buffer
	if err := s.RenderText(&text, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	if !strings.Contains(text.String(), "Warnings\n--------\n2 error nodes") {
		t.Errorf("RenderText() = %q", text.String())
	}

	var md bytes.Buffer
	if err := s.RenderMarkdown(&md); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if !strings.HasPrefix(md.String(), "## Warnings\n\n2 error nodes") {
		t.Errorf("RenderMarkdown() = %q", md.String())
	}

	if s.RenderData() != s {
		t.Error("RenderData() without Data should return the section")
	}
}

func TestReportRender(t *testing.T) {
	r := &Report{
		Title:    "Report",
		Subtitle: "main.go (go)",
		Sections: []Renderable{
			&Section{Title: "One", Content: "first"},
			&Section{Title: "Two", Content: "second"},
		},
	}

	var text bytes.Buffer
	if err := r.RenderText(&text, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	out := text.String()
	if !strings.HasPrefix(out, "Report\n======\n\nmain.go (go)\n") {
		t.Errorf("RenderText() header = %q", out)
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("sections rendered out of order")
	}

	var md bytes.Buffer
	if err := r.RenderMarkdown(&md); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	for _, want := range []string{"# Report", "main.go (go)", "## One", "## Two"} {
		if !strings.Contains(md.String(), want) {
			t.Errorf("RenderMarkdown() missing %q", want)
		}
	}

	data, ok := r.RenderData().(map[string]any)
	if !ok {
		t.Fatalf("RenderData() type = %T", r.RenderData())
	}
	if parts := data["sections"].([]any); len(parts) != 2 {
		t.Errorf("sections = %d, want 2", len(parts))
	}
}

func TestFormatterOutputRenderable(t *testing.T) {
	r := &Report{
		Title:    "Scores",
		Sections: []Renderable{&Section{Title: "S", Content: "body"}},
		Data:     map[string]int{"score": 7},
	}

	tests := []struct {
		format Format
		check  func(t *testing.T, out string)
	}{
		{FormatText, func(t *testing.T, out string) {
			if !strings.Contains(out, "Scores") || !strings.Contains(out, "body") {
				t.Errorf("text output = %q", out)
			}
		}},
		{FormatMarkdown, func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "# Scores") {
				t.Errorf("markdown output = %q", out)
			}
		}},
		{FormatJSON, func(t *testing.T, out string) {
			var got map[string]int
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got["score"] != 7 {
				t.Errorf("score = %d, want 7", got["score"])
			}
		}},
		{FormatYAML, func(t *testing.T, out string) {
			var got map[string]int
			if err := yaml.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid YAML: %v", err)
			}
			if got["score"] != 7 {
				t.Errorf("score = %d, want 7", got["score"])
			}
		}},
		{FormatTOON, func(t *testing.T, out string) {
			if !strings.Contains(out, "score") || !strings.Contains(out, "7") {
				t.Errorf("toon output = %q", out)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			f := NewWriterFormatter(tt.format, &buf, false)
			if err := f.Output(r); err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			tt.check(t, buf.String())
		})
	}
}

func TestFormatterOutputRaw(t *testing.T) {
	data := map[string]string{"key": "value"}

	var md bytes.Buffer
	if err := NewWriterFormatter(FormatMarkdown, &md, false).Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.HasPrefix(md.String(), "```json\n") || !strings.HasSuffix(md.String(), "```\n") {
		t.Errorf("markdown raw output = %q", md.String())
	}

	var text bytes.Buffer
	if err := NewWriterFormatter(FormatText, &text, false).Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.Contains(text.String(), `"key": "value"`) {
		t.Errorf("text raw output should be JSON, got %q", text.String())
	}
}

func TestMarshal(t *testing.T) {
	data := map[string]int{"count": 1}

	out, err := Marshal(data, FormatYAML)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if out != "count: 1\n" {
		t.Errorf("Marshal(yaml) = %q", out)
	}

	out, err = Marshal(data, FormatMarkdown)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(out, `"count": 1`) {
		t.Errorf("Marshal(markdown) should fall back to JSON, got %q", out)
	}
}

func TestFormatterMessageMethods(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatText, &buf, false)

	f.Success("done %d", 1)
	f.Warning("careful %s", "now")
	f.Info("fyi")

	out := buf.String()
	for _, want := range []string{"done 1\n", "WARNING: careful now\n", "fyi\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("messages missing %q in %q", want, out)
		}
	}
}
