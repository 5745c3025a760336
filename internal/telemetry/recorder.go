package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"sandfall/internal/sims/sand"
)

// Recorder writes census samples to census.csv inside an output directory.
// A nil Recorder discards everything, so callers need not check whether
// output is enabled.
type Recorder struct {
	dir           string
	file          *os.File
	headerWritten bool
}

// NewRecorder creates dir and opens census.csv in it. It returns nil when
// dir is empty.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "census.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating census.csv: %w", err)
	}
	return &Recorder{dir: dir, file: f}, nil
}

// WriteConfig saves the effective world configuration as config.yaml.
func (r *Recorder) WriteConfig(cfg *sand.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// Write appends one sample. The first write also emits the header row.
func (r *Recorder) Write(s Sample) error {
	if r == nil {
		return nil
	}
	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close closes census.csv.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ReadSamples loads a census.csv written by a Recorder.
func ReadSamples(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening census: %w", err)
	}
	defer f.Close()

	var samples []Sample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("parsing census: %w", err)
	}
	return samples, nil
}
