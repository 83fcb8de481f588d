// facade.go
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

package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerSettings configures the circuit breaker guarding primary store calls.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker open.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
}

// Facade implements Store over a primary (database) store and an in-memory
// fallback. Every operation tries the primary first; on failure or genuine
// not-found the identical call is retried against the fallback, so callers
// never see which store answered. An error surfaces only when the fallback
// fails after the primary already has.
//
// A per-entity suppression set records deleted IDs before the delete is
// attempted, so a mirrored write or sync pass racing the delete can never
// resurrect the row in a later read. The set is rolled back if the delete
// fails on both stores.
type Facade struct {
	primary  Store
	fallback Store
	breaker  *gobreaker.CircuitBreaker[any]
	log      *zap.Logger

	mu         sync.Mutex
	suppressed map[EntityKind]map[uint64]struct{}
}

// NewFacade wires primary and fallback stores behind one Store.
func NewFacade(primary, fallback Store, log *zap.Logger, bs BreakerSettings) *Facade {
	if log == nil {
		log = zap.NewNop()
	}
	if bs.ConsecutiveFailures == 0 {
		bs.ConsecutiveFailures = 5
	}
	if bs.OpenTimeout == 0 {
		bs.OpenTimeout = 30 * time.Second
	}
	if bs.MaxRequests == 0 {
		bs.MaxRequests = 1
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "primary-store",
		MaxRequests: bs.MaxRequests,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.ConsecutiveFailures
		},
		// Absence is a legitimate result, not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Facade{
		primary:    primary,
		fallback:   fallback,
		breaker:    breaker,
		log:        log,
		suppressed: map[EntityKind]map[uint64]struct{}{},
	}
}

// Primary exposes the primary store for the background reconciler.
func (f *Facade) Primary() Store { return f.primary }

// Fallback exposes the fallback store for the background reconciler.
func (f *Facade) Fallback() Store { return f.fallback }

// BreakerState reports the primary-store circuit state for health checks.
func (f *Facade) BreakerState() string { return f.breaker.State().String() }

// Suppress marks an ID as deleted ahead of the delete attempt.
func (f *Facade) Suppress(kind EntityKind, id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.suppressed[kind]
	if !ok {
		set = map[uint64]struct{}{}
		f.suppressed[kind] = set
	}
	set[id] = struct{}{}
}

// Unsuppress rolls a suppression back after a failed delete.
func (f *Facade) Unsuppress(kind EntityKind, id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.suppressed[kind], id)
}

// IsSuppressed reports whether an ID is in the deleted set.
func (f *Facade) IsSuppressed(kind EntityKind, id uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.suppressed[kind][id]
	return ok
}

// SuppressedIDs returns a snapshot of the deleted set for one entity kind.
func (f *Facade) SuppressedIDs(kind EntityKind) []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint64, 0, len(f.suppressed[kind]))
	for id := range f.suppressed[kind] {
		out = append(out, id)
	}
	return out
}

// LoadTombstones seeds the suppression set from tombstones persisted in the
// primary store, so deletions survive a process restart.
func (f *Facade) LoadTombstones(ctx context.Context) error {
	ts, ok := f.primary.(TombstoneStore)
	if !ok {
		return nil
	}
	tombstones, err := ts.ListTombstones(ctx)
	if err != nil {
		return err
	}
	for _, t := range tombstones {
		f.Suppress(EntityKind(t.EntityKind), t.EntityID)
	}
	return nil
}

// callPrimary routes a primary store call through the circuit breaker.
func callPrimary[T any](f *Facade, fn func() (T, error)) (T, error) {
	res, err := f.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

// fetch tries the primary, then retries the identical operation on the
// fallback when the primary errors or reports not-found.
func fetch[T any](f *Facade, op string, primary func() (T, error), fallback func() (T, error)) (T, error) {
	v, err := callPrimary(f, primary)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		f.log.Warn("primary store call failed, retrying on fallback",
			zap.String("op", op), zap.Error(err))
	}
	return fallback()
}

// mirror runs a best-effort write against the fallback store. Failures are
// logged and swallowed; the caller already has a durable result.
func (f *Facade) mirror(op string, fn func() error) {
	if err := fn(); err != nil {
		f.log.Warn("mirrored write to fallback store failed",
			zap.String("op", op), zap.Error(err))
	}
}

func (f *Facade) persistTombstone(ctx context.Context, kind EntityKind, id uint64) {
	ts, ok := f.primary.(TombstoneStore)
	if !ok {
		return
	}
	if err := ts.PutTombstone(ctx, kind, id); err != nil {
		f.log.Warn("tombstone persist failed",
			zap.String("kind", string(kind)), zap.Uint64("id", id), zap.Error(err))
	}
}

// deleteOp implements the shared delete path: suppress first, try primary,
// retry on the fallback when the primary errors or had no such row, and roll
// the suppression back when nothing was deleted anywhere.
func deleteOp(ctx context.Context, f *Facade, kind EntityKind, id uint64,
	primaryDel func() (bool, error), fallbackDel func() (bool, error)) (bool, error) {

	f.Suppress(kind, id)

	pok, perr := callPrimary(f, primaryDel)
	var fok bool
	var ferr error
	if perr != nil || !pok {
		if perr != nil {
			f.log.Warn("primary delete failed, retrying on fallback",
				zap.String("kind", string(kind)), zap.Uint64("id", id), zap.Error(perr))
		}
		fok, ferr = fallbackDel()
	} else {
		// Primary deleted the row; drop the fallback mirror too.
		f.mirror("delete "+string(kind), func() error {
			_, err := fallbackDel()
			return err
		})
	}

	deleted := (perr == nil && pok) || (ferr == nil && fok)
	if !deleted {
		f.Unsuppress(kind, id)
		if perr != nil && ferr != nil {
			return false, ferr
		}
		return false, nil
	}

	f.persistTombstone(ctx, kind, id)
	return true, nil
}

// filterSuppressed drops deleted IDs from a list result.
func filterSuppressed[T any](f *Facade, kind EntityKind, items []T, id func(T) uint64) []T {
	f.mu.Lock()
	set := f.suppressed[kind]
	f.mu.Unlock()
	if len(set) == 0 {
		return items
	}
	out := items[:0]
	for _, item := range items {
		if _, gone := set[id(item)]; !gone {
			out = append(out, item)
		}
	}
	return out
}

// Collection records

func (f *Facade) CreateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	created, err := callPrimary(f, func() (*models.CollectionRecord, error) {
		return f.primary.CreateRecord(ctx, rec)
	})
	if err != nil {
		f.log.Warn("primary create failed, creating on fallback", zap.Error(err))
		return f.fallback.CreateRecord(ctx, rec)
	}
	f.mirror("create record", func() error {
		clone := *created
		_, err := f.fallback.CreateRecord(ctx, &clone)
		return err
	})
	return created, nil
}

func (f *Facade) GetRecord(ctx context.Context, id uint64) (*models.CollectionRecord, error) {
	if f.IsSuppressed(KindRecord, id) {
		return nil, ErrNotFound
	}
	return fetch(f, "get record",
		func() (*models.CollectionRecord, error) { return f.primary.GetRecord(ctx, id) },
		func() (*models.CollectionRecord, error) { return f.fallback.GetRecord(ctx, id) })
}

func (f *Facade) ListRecords(ctx context.Context) ([]models.CollectionRecord, error) {
	recs, err := fetch(f, "list records",
		func() ([]models.CollectionRecord, error) { return f.primary.ListRecords(ctx) },
		func() ([]models.CollectionRecord, error) { return f.fallback.ListRecords(ctx) })
	if err != nil {
		return nil, err
	}
	return filterSuppressed(f, KindRecord, recs,
		func(r models.CollectionRecord) uint64 { return r.RecordID }), nil
}

func (f *Facade) UpdateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	updated, err := fetch(f, "update record",
		func() (*models.CollectionRecord, error) { return f.primary.UpdateRecord(ctx, rec) },
		func() (*models.CollectionRecord, error) { return f.fallback.UpdateRecord(ctx, rec) })
	if err != nil {
		return nil, err
	}
	f.mirror("update record", func() error {
		clone := *updated
		if _, err := f.fallback.UpdateRecord(ctx, &clone); errors.Is(err, ErrNotFound) {
			_, err = f.fallback.CreateRecord(ctx, &clone)
			return err
		} else if err != nil {
			return err
		}
		return nil
	})
	return updated, nil
}

func (f *Facade) DeleteRecord(ctx context.Context, id uint64) (bool, error) {
	return deleteOp(ctx, f, KindRecord, id,
		func() (bool, error) { return f.primary.DeleteRecord(ctx, id) },
		func() (bool, error) { return f.fallback.DeleteRecord(ctx, id) })
}

func (f *Facade) RewriteHostName(ctx context.Context, oldName, newName string) (int64, error) {
	n, err := callPrimary(f, func() (int64, error) {
		return f.primary.RewriteHostName(ctx, oldName, newName)
	})
	if err != nil {
		f.log.Warn("primary host rewrite failed, rewriting on fallback", zap.Error(err))
		return f.fallback.RewriteHostName(ctx, oldName, newName)
	}
	f.mirror("rewrite host name", func() error {
		_, err := f.fallback.RewriteHostName(ctx, oldName, newName)
		return err
	})
	return n, nil
}

// Hosts

func (f *Facade) CreateHost(ctx context.Context, host *models.Host) (*models.Host, error) {
	created, err := callPrimary(f, func() (*models.Host, error) {
		return f.primary.CreateHost(ctx, host)
	})
	if err != nil {
		f.log.Warn("primary create failed, creating on fallback", zap.Error(err))
		return f.fallback.CreateHost(ctx, host)
	}
	f.mirror("create host", func() error {
		clone := *created
		_, err := f.fallback.CreateHost(ctx, &clone)
		return err
	})
	return created, nil
}

func (f *Facade) GetHost(ctx context.Context, id uint64) (*models.Host, error) {
	if f.IsSuppressed(KindHost, id) {
		return nil, ErrNotFound
	}
	return fetch(f, "get host",
		func() (*models.Host, error) { return f.primary.GetHost(ctx, id) },
		func() (*models.Host, error) { return f.fallback.GetHost(ctx, id) })
}

func (f *Facade) GetHostByName(ctx context.Context, name string) (*models.Host, error) {
	host, err := fetch(f, "get host by name",
		func() (*models.Host, error) { return f.primary.GetHostByName(ctx, name) },
		func() (*models.Host, error) { return f.fallback.GetHostByName(ctx, name) })
	if err != nil {
		return nil, err
	}
	if f.IsSuppressed(KindHost, host.HostID) {
		return nil, ErrNotFound
	}
	return host, nil
}

func (f *Facade) ListHosts(ctx context.Context) ([]models.Host, error) {
	hosts, err := fetch(f, "list hosts",
		func() ([]models.Host, error) { return f.primary.ListHosts(ctx) },
		func() ([]models.Host, error) { return f.fallback.ListHosts(ctx) })
	if err != nil {
		return nil, err
	}
	return filterSuppressed(f, KindHost, hosts,
		func(h models.Host) uint64 { return h.HostID }), nil
}

func (f *Facade) UpdateHost(ctx context.Context, host *models.Host) (*models.Host, error) {
	updated, err := fetch(f, "update host",
		func() (*models.Host, error) { return f.primary.UpdateHost(ctx, host) },
		func() (*models.Host, error) { return f.fallback.UpdateHost(ctx, host) })
	if err != nil {
		return nil, err
	}
	f.mirror("update host", func() error {
		clone := *updated
		if _, err := f.fallback.UpdateHost(ctx, &clone); errors.Is(err, ErrNotFound) {
			_, err = f.fallback.CreateHost(ctx, &clone)
			return err
		} else if err != nil {
			return err
		}
		return nil
	})
	return updated, nil
}

func (f *Facade) DeleteHost(ctx context.Context, id uint64) (bool, error) {
	return deleteOp(ctx, f, KindHost, id,
		func() (bool, error) { return f.primary.DeleteHost(ctx, id) },
		func() (bool, error) { return f.fallback.DeleteHost(ctx, id) })
}
