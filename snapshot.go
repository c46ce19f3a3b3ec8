package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// --- Wire format ---

const snapshotVersion = 1

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

type catalogRowDTO struct {
	Cols          []string `json:"cols"`
	ID            uint64   `json:"id"`
	OriginalIndex int      `json:"originalIndex"`
}

type snapshotDTO struct {
	Version     int                 `json:"version"`
	Header      []ColumnMeta        `json:"header"`
	Rows        []catalogRowDTO     `json:"rows"`
	Reviews     map[string]review   `json:"reviews"`     // uint64 keys stringified
	Reports     map[string][]string `json:"reports"`     // uint64 keys stringified
	Memberships map[string][]string `json:"memberships"` // uint64 keys stringified
	Collections []string            `json:"collections"`
	HashType    string              `json:"hashType,omitempty"`
}

// --- Conversions ---

func toDTORow(r catalogRow) catalogRowDTO {
	return catalogRowDTO{
		Cols:          append([]string(nil), r.cols...),
		ID:            r.id,
		OriginalIndex: r.originalIndex,
	}
}

func fromDTORow(d catalogRowDTO) catalogRow {
	r := catalogRow{
		cols:          append([]string(nil), d.Cols...),
		height:        1,
		id:            d.ID,
		originalIndex: d.OriginalIndex,
	}
	if r.id == 0 {
		r.id = r.ComputeID()
	}
	return r
}

func stringKeys[V any](in map[uint64]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[strconv.FormatUint(k, 10)] = v
	}
	return out
}

func uintKeys[V any](in map[string]V) (map[uint64]V, error) {
	out := make(map[uint64]V, len(in))
	for ks, v := range in {
		k, err := strconv.ParseUint(ks, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid uint64 key %q: %w", ks, err)
		}
		out[k] = v
	}
	return out, nil
}

// --- Public API ---

// exportCSV writes the currently filtered rows with review, report and collection
// columns appended.
func exportCSV(d *dataState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(d.header)+4)
	for _, col := range d.header {
		header = append(header, col.Name)
	}
	header = append(header, "Rating", "Recommended", "Reports", "Collections")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, idx := range d.filteredIndices {
		if idx < 0 || idx >= len(d.rows) {
			return fmt.Errorf("filtered index %d out of range", idx)
		}
		r := d.rows[idx]
		out := append([]string(nil), r.cols...)
		// pad short rows so the extra columns line up
		for len(out) < len(d.header) {
			out = append(out, "")
		}

		rating, recommended := "", ""
		if rv, ok := d.reviews[r.id]; ok {
			rating = strconv.Itoa(rv.Rating)
			recommended = strconv.FormatBool(rv.Recommended)
		}
		out = append(out,
			rating,
			recommended,
			strings.Join(d.reports[r.id], "; "),
			strings.Join(d.memberships[r.id], "; "),
		)
		if err := w.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", idx, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// saveSnapshot writes the whole catalog and its resource state to a JSON file.
func saveSnapshot(d *dataState, path string) error {
	dto := snapshotDTO{
		Version:     snapshotVersion,
		Header:      append([]ColumnMeta(nil), d.header...),
		Rows:        make([]catalogRowDTO, 0, len(d.rows)),
		Reviews:     stringKeys(d.reviews),
		Reports:     stringKeys(d.reports),
		Memberships: stringKeys(d.memberships),
		Collections: append([]string(nil), d.collections...),
		HashType:    d.hashType,
	}
	for _, r := range d.rows {
		dto.Rows = append(dto.Rows, toDTORow(r))
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// loadSnapshot reads a file written by saveSnapshot. Collections from the snapshot
// are merged after the configured ones.
func loadSnapshot(path string, collections []string) (dataState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataState{}, fmt.Errorf("read snapshot: %w", err)
	}
	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return dataState{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if dto.Version != snapshotVersion {
		return dataState{}, fmt.Errorf("%w: %d (want %d)", ErrSnapshotVersion, dto.Version, snapshotVersion)
	}

	rows := make([]catalogRow, 0, len(dto.Rows))
	for _, dr := range dto.Rows {
		rows = append(rows, fromDTORow(dr))
	}
	d := newDataState(append([]ColumnMeta(nil), dto.Header...), rows, collections)
	for _, c := range dto.Collections {
		d.addCollection(c)
	}
	d.hashType = dto.HashType

	if d.reviews, err = uintKeys(dto.Reviews); err != nil {
		return dataState{}, fmt.Errorf("reviews: %w", err)
	}
	if d.reports, err = uintKeys(dto.Reports); err != nil {
		return dataState{}, fmt.Errorf("reports: %w", err)
	}
	if d.memberships, err = uintKeys(dto.Memberships); err != nil {
		return dataState{}, fmt.Errorf("memberships: %w", err)
	}
	for _, names := range d.memberships {
		for _, c := range names {
			d.addCollection(c)
		}
	}
	return d, nil
}
