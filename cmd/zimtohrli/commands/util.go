// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ik5/zimtohrli"
	"github.com/ik5/zimtohrli/audio"
	"github.com/ik5/zimtohrli/formats"
)

var registry = formats.NewRegistry()

// loadFile decodes a YAML or JSON file into v. Fields absent from the file
// keep their current values.
func loadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}

// openSource decodes path with the decoder registered for its extension.
// Closing the source closes the file.
func openSource(path string) (audio.Source, error) {
	dec, format, err := registry.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s as %s: %w", path, format, err)
	}

	slog.Debug("opened", "path", path, "format", format,
		"rate", src.SampleRate(), "channels", src.Channels())
	return src, nil
}

// analyzeFile decodes and analyzes path.
func analyzeFile(z *zimtohrli.Analyzer, path string) (*zimtohrli.Spectrogram, error) {
	start := time.Now()

	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	spec, err := z.AnalyzeSource(src)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	slog.Debug("analyzed", "path", path, "steps", spec.Steps(), "elapsed", time.Since(start))
	return spec, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
