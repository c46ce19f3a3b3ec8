package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ColumnRoles(t *testing.T) {
	d := catalogFromRecords(testRecords, nil)

	roles := make(map[string]ColumnRole)
	visible := make(map[string]bool)
	for _, c := range d.header {
		roles[c.Name] = c.Role
		visible[c.Name] = c.Visible
	}
	want := map[string]ColumnRole{
		"ID":     RoleSecondary,
		"Name":   RolePrimary,
		"Type":   RoleSecondary,
		"AutoV2": RoleHash,
		"SHA256": RoleHash,
		"Notes":  RoleNormal,
	}
	if diff := cmp.Diff(want, roles); diff != "" {
		t.Errorf("roles (-want +got):\n%s", diff)
	}
	assert.False(t, visible["Notes"], "empty column is hidden")
	assert.True(t, visible["SHA256"])
	assert.Equal(t, 1, primaryColumn(d.header))
}

func TestCatalog_RowsKeepSourceLines(t *testing.T) {
	d := catalogFromRecords(testRecords, nil)
	require.Len(t, d.rows, 3)
	assert.Equal(t, 1, d.rows[0].originalIndex)
	assert.Equal(t, 3, d.rows[2].originalIndex)
	assert.Equal(t, "Detail Tweaker", d.rows[2].Title(d.header))
	assert.Equal(t, []int{0, 1, 2}, d.filteredIndices)
}

func TestCatalogRow_IDIgnoresCaseAndSpace(t *testing.T) {
	a := newCatalogRow([]string{"101", "Dreamshaper"}, 1)
	b := newCatalogRow([]string{" 101 ", "DREAMSHAPER"}, 7)
	c := newCatalogRow([]string{"101", "Dreamshaper 2"}, 1)
	assert.Equal(t, a.id, b.id)
	assert.NotEqual(t, a.id, c.id)
}

func TestCatalogRow_TitleFallback(t *testing.T) {
	cols := newColumns([]string{"Name", "Type"})
	r := newCatalogRow([]string{"  ", "LoRA"}, 4)
	assert.Equal(t, "Row 4", r.Title(cols))
	assert.Equal(t, "Row 4", r.Title(newColumns([]string{"Kind"})))
}

func TestDataState_Collections(t *testing.T) {
	d := catalogFromRecords(testRecords, []string{"Favourites", "favourites", " ", "Inspiration"})
	assert.Equal(t, []string{"Favourites", "Inspiration"}, d.collections)

	id := d.rows[0].id
	assert.True(t, d.toggleMembership(id, "Landscapes", true))
	d.toggleMembership(id, "Favourites", true)
	assert.Equal(t, []string{"Favourites", "Landscapes"}, d.memberships[id])
	assert.Contains(t, d.collections, "Landscapes")

	assert.False(t, d.toggleMembership(id, "favourites", false))
	assert.Equal(t, []string{"Landscapes"}, d.memberships[id])
	d.toggleMembership(id, "Landscapes", false)
	assert.NotContains(t, d.memberships, id)
}

func TestDataState_ReportsAndReviews(t *testing.T) {
	d := catalogFromRecords(testRecords, nil)
	id := d.rows[1].id

	assert.Equal(t, 1, d.addReport(id, "Spam"))
	assert.Equal(t, 2, d.addReport(id, "TOS violation"))
	assert.Equal(t, []string{"Spam", "TOS violation"}, d.reports[id])

	d.setReview(id, review{Rating: 2})
	assert.True(t, d.deleteReview(id))
	assert.False(t, d.deleteReview(id))
}

func TestLoadCatalog_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Type\nDreamshaper,Checkpoint\nShort\n"), 0o644))

	d, err := loadCatalog(path, []string{"Favourites"})
	require.NoError(t, err)
	require.Len(t, d.rows, 2)
	assert.Equal(t, "", d.rows[1].cell(1), "ragged rows are allowed")
	assert.Equal(t, []string{"Favourites"}, d.collections)
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadCatalog(filepath.Join(dir, "models.tsv"), nil)
	assert.ErrorContains(t, err, "unsupported file extension")

	_, err = loadCatalog(filepath.Join(dir, "missing.csv"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = loadCatalog(empty, nil)
	assert.ErrorContains(t, err, "no rows")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	d := catalogFromRecords(testRecords, []string{"Favourites"})
	id := d.rows[2].id
	d.setReview(id, review{Rating: 4, Recommended: true, Details: "**crisp**"})
	d.addReport(id, "Spam")
	d.toggleMembership(id, "Landscapes", true)
	d.hashType = "SHA256"

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, saveSnapshot(&d, path))

	got, err := loadCatalog(path, []string{"Inspiration"})
	require.NoError(t, err)
	assert.Equal(t, d.reviews, got.reviews)
	assert.Equal(t, d.reports, got.reports)
	assert.Equal(t, d.memberships, got.memberships)
	assert.Equal(t, "SHA256", got.hashType)
	assert.Equal(t, []string{"Inspiration", "Favourites", "Landscapes"}, got.collections)
	require.Len(t, got.rows, 3)
	assert.Equal(t, d.rows[2].id, got.rows[2].id)
	assert.Equal(t, d.rows[2].originalIndex, got.rows[2].originalIndex)
}

func TestSnapshot_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0o644))

	_, err := loadSnapshot(path, nil)
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestSnapshot_BadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "reviews": {"abc": {"rating": 1}}}`), 0o644))

	_, err := loadSnapshot(path, nil)
	assert.ErrorContains(t, err, "reviews")
}
