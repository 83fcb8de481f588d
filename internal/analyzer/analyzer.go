// analyzer.go
//
// Operations data service for the Sandwich Project nonprofit dashboard
// Copyright (c) 2026 Sandwich Project Ops <ops@sandwichproject.org> (https://sandwichproject.org)
//
// This file is part of sandwich-opsdb.
// sandwich-opsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sandwich-opsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sandwich-opsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Sandwich Project Ops <ops@sandwichproject.org> (https://sandwichproject.org)"
//    in this material, copies, or source code of derived works.

// Package analyzer finds exact-duplicate collection records and flags
// suspicious entries for manual review. It is a pure scan over a snapshot of
// records: it never mutates data, and deletion happens elsewhere through an
// explicit confirmation action.
package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/sandwichproject/opsdb/internal/models"
)

// Reasons attached to suspicious entries.
const (
	ReasonRoundHundred     = "round-hundred-total"
	ReasonRoundFifty       = "round-fifty-total"
	ReasonRepeatedCount    = "repeated-count-run"
	ReasonPlaceholderGroup = "placeholder-group-text"
)

// Suspicious thresholds. Multiples of 100 read as estimated counts outright;
// multiples of 50 only once the total is large enough that organic counts
// rarely land on them.
const (
	roundHundredMin = 100
	roundFiftyMin   = 300
	repeatRunMin    = 3
)

var placeholderMarkers = []string{
	"test",
	"placeholder",
	"n/a",
	"tbd",
	"unknown group",
	"sample",
}

// DuplicateGroup is a set of records sharing an identical business key.
// Keep holds the record with the latest submission timestamp (ties broken by
// highest record ID); ToDelete holds the rest.
type DuplicateGroup struct {
	Key      string                    `json:"key"`
	Records  []models.CollectionRecord `json:"records"`
	Keep     models.CollectionRecord   `json:"keep"`
	ToDelete []models.CollectionRecord `json:"toDelete"`
}

// SuspiciousEntry is a record flagged by heuristic, with the reasons it was
// flagged.
type SuspiciousEntry struct {
	Record  models.CollectionRecord `json:"record"`
	Reasons []string                `json:"reasons"`
}

// Report is the full analyzer output. Purely informational: cleanup is a
// separate, explicitly confirmed action.
type Report struct {
	TotalRecords     int               `json:"totalRecords"`
	DuplicateGroups  []DuplicateGroup  `json:"duplicateGroups"`
	DuplicateRecords int               `json:"duplicateRecords"`
	Suspicious       []SuspiciousEntry `json:"suspicious"`
}

// Analyze scans a snapshot of collection records for exact duplicates and
// suspicious patterns.
func Analyze(records []models.CollectionRecord) Report {
	groups := FindDuplicateGroups(records)
	dupCount := 0
	for _, g := range groups {
		dupCount += len(g.Records)
	}
	return Report{
		TotalRecords:     len(records),
		DuplicateGroups:  groups,
		DuplicateRecords: dupCount,
		Suspicious:       FindSuspicious(records),
	}
}

// DuplicateKey builds the business key for exact-duplicate matching:
// (collection date, normalized host name, individual count, canonicalized
// group collections), hashed so the key is compact and order-insensitive in
// the group list.
func DuplicateKey(rec *models.CollectionRecord) string {
	raw := fmt.Sprintf("%s|%s|%d|%s",
		strings.TrimSpace(rec.CollectionDate),
		normalizeHost(rec.HostName),
		rec.IndividualSandwiches,
		canonicalGroups(rec),
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func normalizeHost(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// canonicalGroups renders the group-collections content in a stable form so
// two records with the same groups in different order still match. Legacy
// free-text rows canonicalize to their trimmed lowercased text.
func canonicalGroups(rec *models.CollectionRecord) string {
	groups, ok := rec.Groups()
	if !ok {
		return "legacy:" + strings.ToLower(strings.TrimSpace(rec.GroupText()))
	}
	if len(groups) == 0 {
		return ""
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%s=%d", normalizeHost(g.Name), g.Count))
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// FindDuplicateGroups partitions records into exact-duplicate groups. Every
// record whose key appears more than once lands in exactly one group.
func FindDuplicateGroups(records []models.CollectionRecord) []DuplicateGroup {
	byKey := make(map[string][]models.CollectionRecord)
	for _, rec := range records {
		key := DuplicateKey(&rec)
		byKey[key] = append(byKey[key], rec)
	}

	var groups []DuplicateGroup
	for key, members := range byKey {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].RecordID < members[j].RecordID })

		keep := members[0]
		for _, rec := range members[1:] {
			if rec.SubmittedAt.After(keep.SubmittedAt) ||
				(rec.SubmittedAt.Equal(keep.SubmittedAt) && rec.RecordID > keep.RecordID) {
				keep = rec
			}
		}

		toDelete := make([]models.CollectionRecord, 0, len(members)-1)
		for _, rec := range members {
			if rec.RecordID != keep.RecordID {
				toDelete = append(toDelete, rec)
			}
		}

		groups = append(groups, DuplicateGroup{
			Key:      key,
			Records:  members,
			Keep:     keep,
			ToDelete: toDelete,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Records[0].RecordID < groups[j].Records[0].RecordID
	})
	return groups
}

// FindSuspicious flags records matching review heuristics: round-number
// totals, runs of identical counts from the same host, and placeholder text
// in the group-collections field.
func FindSuspicious(records []models.CollectionRecord) []SuspiciousEntry {
	reasons := make(map[uint64][]string)
	byID := make(map[uint64]models.CollectionRecord, len(records))

	for _, rec := range records {
		byID[rec.RecordID] = rec

		total := rec.TotalSandwiches()
		if total >= roundHundredMin && total%100 == 0 {
			reasons[rec.RecordID] = append(reasons[rec.RecordID], ReasonRoundHundred)
		} else if total >= roundFiftyMin && total%50 == 0 {
			reasons[rec.RecordID] = append(reasons[rec.RecordID], ReasonRoundFifty)
		}

		if hasPlaceholderText(&rec) {
			reasons[rec.RecordID] = append(reasons[rec.RecordID], ReasonPlaceholderGroup)
		}
	}

	for _, run := range repeatedCountRuns(records) {
		for _, id := range run {
			reasons[id] = append(reasons[id], ReasonRepeatedCount)
		}
	}

	ids := make([]uint64, 0, len(reasons))
	for id := range reasons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]SuspiciousEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, SuspiciousEntry{Record: byID[id], Reasons: reasons[id]})
	}
	return out
}

func hasPlaceholderText(rec *models.CollectionRecord) bool {
	groups, ok := rec.Groups()
	if !ok {
		text := strings.ToLower(rec.GroupText())
		for _, marker := range placeholderMarkers {
			if strings.Contains(text, marker) {
				return true
			}
		}
		return false
	}
	for _, g := range groups {
		name := strings.ToLower(g.Name)
		for _, marker := range placeholderMarkers {
			if strings.Contains(name, marker) {
				return true
			}
		}
	}
	return false
}

// repeatedCountRuns finds runs of >= repeatRunMin consecutive submissions
// from the same host reporting the same nonzero individual count.
func repeatedCountRuns(records []models.CollectionRecord) [][]uint64 {
	byHost := make(map[string][]models.CollectionRecord)
	for _, rec := range records {
		byHost[normalizeHost(rec.HostName)] = append(byHost[normalizeHost(rec.HostName)], rec)
	}

	var runs [][]uint64
	for _, recs := range byHost {
		sort.Slice(recs, func(i, j int) bool {
			if !recs[i].SubmittedAt.Equal(recs[j].SubmittedAt) {
				return recs[i].SubmittedAt.Before(recs[j].SubmittedAt)
			}
			return recs[i].RecordID < recs[j].RecordID
		})

		run := []uint64{recs[0].RecordID}
		for i := 1; i <= len(recs); i++ {
			if i < len(recs) && recs[i].IndividualSandwiches == recs[i-1].IndividualSandwiches &&
				recs[i].IndividualSandwiches > 0 {
				run = append(run, recs[i].RecordID)
				continue
			}
			if len(run) >= repeatRunMin {
				runs = append(runs, run)
			}
			if i < len(recs) {
				run = []uint64{recs[i].RecordID}
			}
		}
	}
	return runs
}
