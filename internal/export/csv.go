// Package export writes a clock's check-in history as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/SoarinFerret/kensho/internal/clock"
)

// ErrNoHistory is returned when every recorded day has zero check-ins.
var ErrNoHistory = errors.New("no check-ins recorded yet")

var header = []string{"date", "clock", "check_ins"}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// WriteCSV writes one row per record under the header date,clock,check_ins.
func WriteCSV(w io.Writer, label string, records []clock.DateCount) error {
	if !hasCheckIns(records) {
		return ErrNoHistory
	}

	name := strings.ReplaceAll(label, ",", " ")
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write([]string{rec.Date, name, strconv.Itoa(rec.Count)}); err != nil {
			return fmt.Errorf("write %s: %w", rec.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName suggests a file name such as C1_Morning_Breath.csv.
func FileName(identifier, label string) string {
	base := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(label), "_"), "_")
	if base == "" {
		base = "history"
	}
	if identifier != "" {
		base = identifier + "_" + base
	}
	return base + ".csv"
}

// SaveFile writes the CSV to path, replacing any existing file.
func SaveFile(path, label string, records []clock.DateCount) error {
	if !hasCheckIns(records) {
		return ErrNoHistory
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, label, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func hasCheckIns(records []clock.DateCount) bool {
	for _, rec := range records {
		if rec.Count > 0 {
			return true
		}
	}
	return false
}
