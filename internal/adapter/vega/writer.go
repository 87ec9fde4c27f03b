// Package vega writes chart specifications to disk as a JSON document plus a
// standalone interactive HTML page (vega-embed with actions disabled).
package vega

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/transit-weather-charts/internal/chart"
)

// page is the self-contained HTML document wrapping one chart spec.
var page = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Name}}</title>
  <script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
  <style>body { margin: 12px; }</style>
</head>
<body>
  <div id="vis"></div>
  <script>
    const spec = {{.Spec}};
    vegaEmbed("#vis", spec, {actions: false}).catch(console.error);
  </script>
</body>
</html>
`))

// Writer emits chart artifacts into a fixed output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer. The directory is created on first emit.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// EmitChart writes <name>.json and <name>.html for one chart.
func (w *Writer) EmitChart(ctx context.Context, c chart.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	specJSON, err := json.MarshalIndent(c.Spec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal spec %s: %w", c.Name, err)
	}

	jsonPath := filepath.Join(w.dir, c.Name+".json")
	if err := os.WriteFile(jsonPath, append(specJSON, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Name string
		Spec template.JS
	}{Name: c.Name, Spec: template.JS(specJSON)})
	if err != nil {
		return fmt.Errorf("render html %s: %w", c.Name, err)
	}

	htmlPath := filepath.Join(w.dir, c.Name+".html")
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}

	w.logger.Info("chart emitted",
		"name", c.Name,
		"json", filepath.Base(jsonPath),
		"html", filepath.Base(htmlPath),
	)
	return nil
}
