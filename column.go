package main

import "strings"

type ColumnRole int

const (
	RoleNormal    ColumnRole = iota
	RolePrimary              // resource name
	RoleSecondary            // id, type
	RoleHash                 // model file hashes, shown in the hash badge
)

type ColumnMeta struct {
	Name     string
	Index    int
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

// hashColumnTypes maps lower-cased column names to the hash type label the badge shows.
var hashColumnTypes = map[string]string{
	"autov1": "AutoV1",
	"autov2": "AutoV2",
	"autov3": "AutoV3",
	"sha256": "SHA256",
	"crc32":  "CRC32",
	"blake3": "BLAKE3",
}

func detectRole(name string) ColumnRole {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := hashColumnTypes[n]; ok {
		return RoleHash
	}
	switch n {
	case "name", "title":
		return RolePrimary
	case "id", "type":
		return RoleSecondary
	default:
		return RoleNormal
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 24
	case RoleSecondary:
		return 8
	case RoleHash:
		return 12
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 4.0
	case RoleSecondary:
		return 1.0
	case RoleHash:
		return 0.5
	default:
		return 1.5
	}
}

func newColumns(names []string) []ColumnMeta {
	cols := make([]ColumnMeta, len(names))
	for i, name := range names {
		role := detectRole(name)
		cols[i] = ColumnMeta{
			Name:     name,
			Index:    i,
			Role:     role,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(role),
			Weight:   defaultWeightForRole(role),
		}
	}
	return cols
}

// primaryColumn returns the index of the name column, or -1.
func primaryColumn(cols []ColumnMeta) int {
	for _, c := range cols {
		if c.Role == RolePrimary {
			return c.Index
		}
	}
	return -1
}

// markEmptyColumns hides every non-primary column without data in any row.
func markEmptyColumns(cols []ColumnMeta, rows [][]string) {
	for i := range cols {
		hasData := false
		for _, row := range rows {
			if cols[i].Index >= len(row) {
				continue
			}
			if strings.TrimSpace(row[cols[i].Index]) != "" {
				hasData = true
				break
			}
		}
		if !hasData && cols[i].Role != RolePrimary {
			cols[i].Visible = false
			cols[i].Width = 0
			cols[i].Weight = 0
		}
	}
}

func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// Too tight: each visible column gets its MinWidth, clamped
		for i := range cols {
			if !cols[i].Visible {
				continue
			}
			cols[i].Width = min(cols[i].MinWidth, totalWidth)
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
