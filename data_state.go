package main

import (
	"regexp"
	"sort"
	"strings"
)

// review is the local review a user keeps for a resource.
type review struct {
	Rating      int    `json:"rating"`
	Recommended bool   `json:"recommended"`
	Details     string `json:"details,omitempty"`
}

type dataState struct {
	header          []ColumnMeta
	rows            []catalogRow
	filterRegex     *regexp.Regexp
	filteredIndices []int // indices into rows that match the current filter

	reviews     map[uint64]review
	reports     map[uint64][]string // reasons, oldest first
	memberships map[uint64][]string // collection names per row
	collections []string            // every known collection
	hashType    string              // last hash type picked in the badge
}

func newDataState(header []ColumnMeta, rows []catalogRow, collections []string) dataState {
	d := dataState{
		header:      header,
		rows:        rows,
		reviews:     make(map[uint64]review),
		reports:     make(map[uint64][]string),
		memberships: make(map[uint64][]string),
	}
	for _, c := range collections {
		d.addCollection(c)
	}
	return d
}

func (d *dataState) rowByID(id uint64) (*catalogRow, bool) {
	for i := range d.rows {
		if d.rows[i].id == id {
			return &d.rows[i], true
		}
	}
	return nil, false
}

func (d *dataState) addCollection(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	for _, c := range d.collections {
		if strings.EqualFold(c, name) {
			return
		}
	}
	d.collections = append(d.collections, name)
}

// toggleMembership adds or removes id from collection and reports whether it is a
// member afterwards.
func (d *dataState) toggleMembership(id uint64, collection string, add bool) bool {
	d.addCollection(collection)
	cur := d.memberships[id]
	kept := cur[:0:0]
	for _, c := range cur {
		if !strings.EqualFold(c, collection) {
			kept = append(kept, c)
		}
	}
	if add {
		kept = append(kept, collection)
		sort.Strings(kept)
	}
	if len(kept) == 0 {
		delete(d.memberships, id)
	} else {
		d.memberships[id] = kept
	}
	return add
}

func (d *dataState) addReport(id uint64, reason string) int {
	d.reports[id] = append(d.reports[id], reason)
	return len(d.reports[id])
}

func (d *dataState) setReview(id uint64, r review) {
	d.reviews[id] = r
}

func (d *dataState) deleteReview(id uint64) bool {
	if _, ok := d.reviews[id]; !ok {
		return false
	}
	delete(d.reviews, id)
	return true
}
