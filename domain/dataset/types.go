package dataset

import (
	"strconv"
	"time"

	"bmireport/domain/bmi"
	"bmireport/domain/core"
)

// Source describes where a dataset came from
type Source string

const (
	SourceCSV    Source = "csv"
	SourceExcel  Source = "xlsx"
	SourceMemory Source = "memory"
)

// Dataset is an already-parsed body measurement table
type Dataset struct {
	Name     string       `json:"name"`
	Source   Source       `json:"source"`
	Path     string       `json:"path,omitempty"`
	Records  []bmi.Record `json:"records"`
	Warnings []string     `json:"warnings,omitempty"` // per-cell parse problems from the loader
	LoadedAt time.Time    `json:"loaded_at"`
}

// New wraps in-memory records as a dataset
func New(name string, records []bmi.Record) *Dataset {
	return &Dataset{
		Name:     name,
		Source:   SourceMemory,
		Records:  records,
		LoadedAt: time.Now(),
	}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Hash fingerprints every column of the table, Gender included, in row order
func (d *Dataset) Hash() core.TableHash {
	if d == nil {
		return core.ComputeTableHash(nil)
	}
	rows := make([][]string, len(d.Records))
	for i, r := range d.Records {
		rows[i] = []string{
			r.Gender,
			strconv.FormatFloat(r.Height, 'g', -1, 64),
			strconv.FormatFloat(r.Weight, 'g', -1, 64),
			strconv.Itoa(r.Index),
		}
	}
	return core.ComputeTableHash(rows)
}

// Pair holds the training and validation tables the report is built from
type Pair struct {
	Train      *Dataset `json:"train"`
	Validation *Dataset `json:"validation,omitempty"`
}
