// Package clean implements the data cleaning step of the training
// pipeline: case normalization, null handling and column fixes over a
// raw CSV dataset, producing the processed file the versioning workflow
// tracks.
package clean

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/perfpredict/dataver/pkg/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Spec configures the cleaning rules for one dataset
type Spec struct {
	// TargetColumn names the label column: rows with an empty label are dropped
	TargetColumn string `json:"target_column" yaml:"target_column"`

	// NormalizeColumns get uppercased and trimmed
	NormalizeColumns []string `json:"normalize_columns" yaml:"normalize_columns"`

	// NullStrings are cell values treated as missing (compared after normalization)
	NullStrings []string `json:"null_strings" yaml:"null_strings"`

	// DropColumns are removed entirely
	DropColumns []string `json:"drop_columns" yaml:"drop_columns"`

	// RenameColumns maps raw header names to canonical ones
	RenameColumns map[string]string `json:"rename_columns" yaml:"rename_columns"`

	// FillDefaults replaces missing cells per column (applied after renaming)
	FillDefaults map[string]string `json:"fill_defaults" yaml:"fill_defaults"`
}

// DefaultSpec returns the cleaning rules for the student performance
// dataset.
func DefaultSpec() Spec {
	return Spec{
		TargetColumn: "Performance",
		NormalizeColumns: []string{
			"Performance", "Gender", "Caste", "coaching", "time",
			"Class_ten_education", "twelve_education", "medium",
			"Class_ X_Percentage", "Class_XII_Percentage",
			"Father_occupation", "Mother_occupation", "mixed_type_col",
		},
		NullStrings: []string{"NAN", "NULL", "NONE", ""},
		DropColumns: []string{"mixed_type_col"},
		RenameColumns: map[string]string{
			"Class_ X_Percentage": "Class_X_Percentage",
		},
		FillDefaults: map[string]string{
			"Class_X_Percentage":   "EXCELLENT",
			"Class_XII_Percentage": "EXCELLENT",
			"Gender":               "MISSING",
			"Caste":                "GENERAL",
			"coaching":             "WA",
			"time":                 "TWO",
			"Class_ten_education":  "SEBA",
			"twelve_education":     "AHSEC",
			"medium":               "ENGLISH",
			"Father_occupation":    "OTHERS",
			"Mother_occupation":    "HOUSE_WIFE",
		},
	}
}

// Report summarizes a cleaning run
type Report struct {
	RowsIn  int
	RowsOut int
	Dropped int
	Columns []string
}

// Option alters the cleaner behavior
type Option func(*Cleaner)

// WithFs substitutes the filesystem holding the datasets
func WithFs(fs afero.Fs) Option {
	return func(c *Cleaner) {
		c.fs = fs
	}
}

// WithLogger sets a logger for the cleaner
func WithLogger(l *zap.Logger) Option {
	return func(c *Cleaner) {
		c.l = l
	}
}

// New creates a cleaner applying the given rules
func New(spec Spec, opts ...Option) *Cleaner {
	c := &Cleaner{
		spec: spec,
		fs:   afero.NewOsFs(),
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Cleaner runs the cleaning rules over a CSV dataset
type Cleaner struct {
	spec Spec
	fs   afero.Fs
	l    *zap.Logger
}

// Run loads the raw dataset, applies the rules in order and saves the
// cleaned dataset, creating parent directories as needed.
func (c *Cleaner) Run(inputPath, outputPath string) (Report, error) {
	var report Report

	header, rows, err := c.load(inputPath)
	if err != nil {
		return report, err
	}
	report.RowsIn = len(rows)
	c.l.Info("dataset loaded",
		zap.String("path", inputPath),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(header)))

	cols := indexColumns(header)
	c.normalize(cols, rows)
	rows = c.dropNullTargets(cols, rows)
	header, rows, cols = c.dropColumns(header, rows)
	c.renameColumns(header)
	cols = indexColumns(header)
	c.fillDefaults(cols, rows)

	if err := c.save(outputPath, header, rows); err != nil {
		return report, err
	}

	report.RowsOut = len(rows)
	report.Dropped = report.RowsIn - report.RowsOut
	report.Columns = header
	c.l.Info("cleaned dataset saved",
		zap.String("path", outputPath),
		zap.Int("rows", report.RowsOut),
		zap.Int("dropped", report.Dropped))
	return report, nil
}

func (c *Cleaner) load(path string) ([]string, [][]string, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, nil, status.ErrFileNotFound.WrapMessage("%s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty dataset", path)
	}
	return records[0], records[1:], nil
}

func (c *Cleaner) save(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := c.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := c.fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

// normalize uppercases and trims the configured columns, then maps null
// markers to empty cells.
func (c *Cleaner) normalize(cols map[string]int, rows [][]string) {
	nulls := make(map[string]bool, len(c.spec.NullStrings))
	for _, s := range c.spec.NullStrings {
		nulls[s] = true
	}
	for _, name := range c.spec.NormalizeColumns {
		i, ok := cols[name]
		if !ok {
			continue
		}
		for _, row := range rows {
			v := strings.ToUpper(strings.TrimSpace(row[i]))
			if nulls[v] {
				v = ""
			}
			row[i] = v
		}
	}
}

func (c *Cleaner) dropNullTargets(cols map[string]int, rows [][]string) [][]string {
	i, ok := cols[c.spec.TargetColumn]
	if !ok {
		return rows
	}
	kept := rows[:0]
	for _, row := range rows {
		if row[i] != "" {
			kept = append(kept, row)
		}
	}
	if dropped := len(rows) - len(kept); dropped > 0 {
		c.l.Info("dropped rows with null target",
			zap.String("column", c.spec.TargetColumn),
			zap.Int("rows", dropped))
	}
	return kept
}

func (c *Cleaner) dropColumns(header []string, rows [][]string) ([]string, [][]string, map[string]int) {
	drop := make(map[string]bool, len(c.spec.DropColumns))
	for _, name := range c.spec.DropColumns {
		drop[name] = true
	}
	var keepIdx []int
	var newHeader []string
	for i, name := range header {
		if drop[name] {
			continue
		}
		keepIdx = append(keepIdx, i)
		newHeader = append(newHeader, name)
	}
	if len(keepIdx) == len(header) {
		return header, rows, indexColumns(header)
	}
	for r, row := range rows {
		newRow := make([]string, 0, len(keepIdx))
		for _, i := range keepIdx {
			newRow = append(newRow, row[i])
		}
		rows[r] = newRow
	}
	return newHeader, rows, indexColumns(newHeader)
}

func (c *Cleaner) renameColumns(header []string) {
	for i, name := range header {
		if canonical, ok := c.spec.RenameColumns[name]; ok {
			header[i] = canonical
		}
	}
}

func (c *Cleaner) fillDefaults(cols map[string]int, rows [][]string) {
	for name, fill := range c.spec.FillDefaults {
		i, ok := cols[name]
		if !ok {
			continue
		}
		filled := 0
		for _, row := range rows {
			if row[i] == "" {
				row[i] = fill
				filled++
			}
		}
		if filled > 0 {
			c.l.Info("filled missing values",
				zap.String("column", name),
				zap.String("value", fill),
				zap.Int("cells", filled))
		}
	}
}
