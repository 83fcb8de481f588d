// reconciler.go
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

// Package reconciler keeps the fallback store convergent with the primary.
// Deletions applied while the primary was unreachable survive as tombstones,
// so each run first replays tombstones against both stores and then mirrors
// the surviving rows into the fallback.
package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sandwichproject/opsdb/internal/storage"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsdb_reconciler_runs_total",
		Help: "Reconciler runs by outcome.",
	}, []string{"status"})

	recordsMirrored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsdb_reconciler_rows_mirrored_total",
		Help: "Rows copied or refreshed in the fallback store.",
	})

	tombstonesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsdb_reconciler_tombstones_applied_total",
		Help: "Tombstoned deletions replayed against the stores.",
	})
)

// Reconciler mirrors the primary store into the fallback on a cron schedule.
type Reconciler struct {
	cron    *cron.Cron
	facade  *storage.Facade
	log     *zap.Logger
	spec    string
	retries int
}

// New creates a reconciler. spec is a cron expression or @every duration;
// retries bounds the attempts per scheduled run.
func New(facade *storage.Facade, log *zap.Logger, spec string, retries int) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	if retries < 1 {
		retries = 1
	}
	return &Reconciler{
		cron:    cron.New(),
		facade:  facade,
		log:     log,
		spec:    spec,
		retries: retries,
	}
}

// Start schedules the reconciler.
func (r *Reconciler) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.run); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info("reconciler started", zap.String("schedule", r.spec))
	return nil
}

// Stop stops the cron scheduler. Any in-flight run finishes.
func (r *Reconciler) Stop() {
	r.cron.Stop()
	r.log.Info("reconciler stopped")
}

func (r *Reconciler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	runID := uuid.NewString()
	log := r.log.With(zap.String("run", runID))

	var err error
	for attempt := 1; attempt <= r.retries; attempt++ {
		if err = r.RunOnce(ctx); err == nil {
			runsTotal.WithLabelValues("ok").Inc()
			return
		}
		log.Warn("reconcile attempt failed",
			zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	runsTotal.WithLabelValues("error").Inc()
	log.Error("reconcile run gave up", zap.Int("attempts", r.retries), zap.Error(err))
}

// RunOnce performs a single reconcile pass: replay tombstones, then mirror
// primary records and hosts into the fallback. Safe to call repeatedly.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	if err := r.replayTombstones(ctx); err != nil {
		return err
	}
	if err := r.mirrorRecords(ctx); err != nil {
		return err
	}
	return r.mirrorHosts(ctx)
}

func (r *Reconciler) replayTombstones(ctx context.Context) error {
	ts, ok := r.facade.Primary().(storage.TombstoneStore)
	if !ok {
		return nil
	}
	tombstones, err := ts.ListTombstones(ctx)
	if err != nil {
		return err
	}

	for _, t := range tombstones {
		kind := storage.EntityKind(t.EntityKind)
		for _, store := range []storage.Store{r.facade.Primary(), r.facade.Fallback()} {
			deleted, err := deleteByKind(ctx, store, kind, t.EntityID)
			if err != nil {
				return err
			}
			if deleted {
				tombstonesApplied.Inc()
			}
		}
		r.facade.Suppress(kind, t.EntityID)
	}
	return nil
}

func (r *Reconciler) mirrorRecords(ctx context.Context) error {
	records, err := r.facade.Primary().ListRecords(ctx)
	if err != nil {
		return err
	}
	fallback := r.facade.Fallback()

	for i := range records {
		rec := records[i]
		if r.facade.IsSuppressed(storage.KindRecord, rec.RecordID) {
			continue
		}
		existing, err := fallback.GetRecord(ctx, rec.RecordID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if _, err := fallback.CreateRecord(ctx, &rec); err != nil {
				return err
			}
			recordsMirrored.Inc()
		case err != nil:
			return err
		case existing.UpdatedAt.Before(rec.UpdatedAt):
			if _, err := fallback.UpdateRecord(ctx, &rec); err != nil {
				return err
			}
			recordsMirrored.Inc()
		}
	}
	return nil
}

func (r *Reconciler) mirrorHosts(ctx context.Context) error {
	hosts, err := r.facade.Primary().ListHosts(ctx)
	if err != nil {
		return err
	}
	fallback := r.facade.Fallback()

	for i := range hosts {
		host := hosts[i]
		if r.facade.IsSuppressed(storage.KindHost, host.HostID) {
			continue
		}
		_, err := fallback.GetHost(ctx, host.HostID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if _, err := fallback.CreateHost(ctx, &host); err != nil {
				return err
			}
			recordsMirrored.Inc()
		case err != nil:
			return err
		}
	}
	return nil
}

func deleteByKind(ctx context.Context, store storage.Store, kind storage.EntityKind, id uint64) (bool, error) {
	switch kind {
	case storage.KindRecord:
		return store.DeleteRecord(ctx, id)
	case storage.KindHost:
		return store.DeleteHost(ctx, id)
	case storage.KindDriver:
		return store.DeleteDriver(ctx, id)
	case storage.KindRecipient:
		return store.DeleteRecipient(ctx, id)
	case storage.KindMeeting:
		return store.DeleteMeeting(ctx, id)
	case storage.KindMessage:
		return store.DeleteMessage(ctx, id)
	}
	return false, nil
}
