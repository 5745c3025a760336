package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

func writeCSV[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
