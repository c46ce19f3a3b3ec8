package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-gallery/logging"
)

// loadCatalog reads a CSV export or a JSON snapshot, picked by extension.
func loadCatalog(path string, collections []string) (dataState, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return loadSnapshot(path, collections)
	case ".csv":
		return loadCSV(path, collections)
	default:
		return dataState{}, fmt.Errorf("unsupported file extension %q (want .csv or .json)", ext)
	}
}

func loadCSV(path string, collections []string) (dataState, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataState{}, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return dataState{}, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return dataState{}, fmt.Errorf("CSV %q has no rows", path)
	}
	return catalogFromRecords(records, collections), nil
}

// catalogFromRecords treats the first record as the header.
func catalogFromRecords(data [][]string, collections []string) dataState {
	cols := newColumns(data[0])
	rows := make([]catalogRow, 0, len(data)-1)
	for i, rec := range data[1:] {
		rows = append(rows, newCatalogRow(rec, i+1))
	}
	markEmptyColumns(cols, data[1:])
	for _, c := range cols {
		if !c.Visible {
			logging.Debugf("catalog: column %q has no data, hidden", c.Name)
		}
	}
	return newDataState(cols, rows, collections)
}
