// reports.go
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
	"sort"
	"time"

	"github.com/sandwichproject/opsdb/internal/storage"
)

// HostTotal is one host's contribution in the summary report.
type HostTotal struct {
	HostName   string `json:"hostName"`
	Records    int    `json:"records"`
	Sandwiches int    `json:"sandwiches"`
}

// WeekTotal is one ISO week's contribution in the summary report.
type WeekTotal struct {
	Week       string `json:"week"`
	Records    int    `json:"records"`
	Sandwiches int    `json:"sandwiches"`
}

// Summary is the dashboard totals report.
type Summary struct {
	TotalRecords         int         `json:"totalRecords"`
	TotalSandwiches      int         `json:"totalSandwiches"`
	IndividualSandwiches int         `json:"individualSandwiches"`
	GroupSandwiches      int         `json:"groupSandwiches"`
	FirstDate            string      `json:"firstDate,omitempty"`
	LastDate             string      `json:"lastDate,omitempty"`
	PerHost              []HostTotal `json:"perHost"`
	PerWeek              []WeekTotal `json:"perWeek"`
}

// SummaryReport computes dashboard totals over all collection records.
// Per-host totals are sorted by sandwich count, largest first.
func SummaryReport(ctx context.Context, store storage.Store) (Summary, error) {
	records, err := store.ListRecords(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{TotalRecords: len(records)}
	perHost := map[string]*HostTotal{}
	perWeek := map[string]*WeekTotal{}

	for _, rec := range records {
		total := rec.TotalSandwiches()
		summary.TotalSandwiches += total
		summary.IndividualSandwiches += rec.IndividualSandwiches
		summary.GroupSandwiches += total - rec.IndividualSandwiches

		if summary.FirstDate == "" || rec.CollectionDate < summary.FirstDate {
			summary.FirstDate = rec.CollectionDate
		}
		if rec.CollectionDate > summary.LastDate {
			summary.LastDate = rec.CollectionDate
		}

		ht, ok := perHost[rec.HostName]
		if !ok {
			ht = &HostTotal{HostName: rec.HostName}
			perHost[rec.HostName] = ht
		}
		ht.Records++
		ht.Sandwiches += total

		// Legacy rows can carry dates outside the expected format; they
		// still count in the totals above, just not in a week bucket.
		if week, ok := isoWeek(rec.CollectionDate); ok {
			wt, ok := perWeek[week]
			if !ok {
				wt = &WeekTotal{Week: week}
				perWeek[week] = wt
			}
			wt.Records++
			wt.Sandwiches += total
		}
	}

	summary.PerHost = make([]HostTotal, 0, len(perHost))
	for _, ht := range perHost {
		summary.PerHost = append(summary.PerHost, *ht)
	}
	sort.Slice(summary.PerHost, func(i, j int) bool {
		if summary.PerHost[i].Sandwiches != summary.PerHost[j].Sandwiches {
			return summary.PerHost[i].Sandwiches > summary.PerHost[j].Sandwiches
		}
		return summary.PerHost[i].HostName < summary.PerHost[j].HostName
	})

	summary.PerWeek = make([]WeekTotal, 0, len(perWeek))
	for _, wt := range perWeek {
		summary.PerWeek = append(summary.PerWeek, *wt)
	}
	sort.Slice(summary.PerWeek, func(i, j int) bool {
		return summary.PerWeek[i].Week < summary.PerWeek[j].Week
	})

	return summary, nil
}

// isoWeek converts a collection date to its ISO week label, e.g. 2026-W11.
func isoWeek(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), true
}
