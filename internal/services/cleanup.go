// cleanup.go
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

package services

import (
	"context"
	"fmt"

	"github.com/sandwichproject/opsdb/internal/analyzer"
	"github.com/sandwichproject/opsdb/internal/storage"
)

// CleanupResult summarizes one duplicate/suspicious cleanup action.
type CleanupResult struct {
	GroupsCleaned  int   `json:"groupsCleaned"`
	RecordsDeleted int64 `json:"recordsDeleted"`
}

// AnalyzeRecords runs the duplicate/suspicious scan over the current record
// snapshot. Informational only; nothing is deleted.
func AnalyzeRecords(ctx context.Context, store storage.Store) (analyzer.Report, error) {
	records, err := store.ListRecords(ctx)
	if err != nil {
		return analyzer.Report{}, err
	}
	return analyzer.Analyze(records), nil
}

// CleanDuplicateGroup deletes the non-keep members of a single duplicate
// group, identified by its business key.
func CleanDuplicateGroup(ctx context.Context, store storage.Store, key string) (CleanupResult, error) {
	report, err := AnalyzeRecords(ctx, store)
	if err != nil {
		return CleanupResult{}, err
	}
	for _, group := range report.DuplicateGroups {
		if group.Key != key {
			continue
		}
		deleted, err := deleteGroupLosers(ctx, store, group)
		return CleanupResult{GroupsCleaned: 1, RecordsDeleted: deleted}, err
	}
	return CleanupResult{}, fmt.Errorf("duplicate group %s: %w", key, storage.ErrNotFound)
}

// CleanAllDuplicates deletes the non-keep members of every exact-duplicate
// group. Running it again with no new data deletes nothing.
func CleanAllDuplicates(ctx context.Context, store storage.Store) (CleanupResult, error) {
	report, err := AnalyzeRecords(ctx, store)
	if err != nil {
		return CleanupResult{}, err
	}
	result := CleanupResult{}
	for _, group := range report.DuplicateGroups {
		deleted, err := deleteGroupLosers(ctx, store, group)
		result.RecordsDeleted += deleted
		if err != nil {
			return result, err
		}
		result.GroupsCleaned++
	}
	return result, nil
}

// CleanSuspicious deletes every record currently flagged by the suspicious
// heuristics.
func CleanSuspicious(ctx context.Context, store storage.Store) (CleanupResult, error) {
	report, err := AnalyzeRecords(ctx, store)
	if err != nil {
		return CleanupResult{}, err
	}
	ids := make([]uint64, 0, len(report.Suspicious))
	for _, entry := range report.Suspicious {
		ids = append(ids, entry.Record.RecordID)
	}
	deleted, err := BatchDeleteRecords(ctx, store, ids)
	return CleanupResult{RecordsDeleted: deleted}, err
}

func deleteGroupLosers(ctx context.Context, store storage.Store, group analyzer.DuplicateGroup) (int64, error) {
	ids := make([]uint64, 0, len(group.ToDelete))
	for _, rec := range group.ToDelete {
		ids = append(ids, rec.RecordID)
	}
	return BatchDeleteRecords(ctx, store, ids)
}
