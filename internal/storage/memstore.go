// memstore.go
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
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
)

// MemStore is the in-memory fallback store. It keeps recently mirrored data
// warm so the façade can keep serving while the primary is down. Creates
// honor pre-assigned IDs (mirrored writes) and otherwise allocate from a
// per-entity counter.
type MemStore struct {
	mu sync.RWMutex

	records    map[uint64]models.CollectionRecord
	hosts      map[uint64]models.Host
	drivers    map[uint64]models.Driver
	recipients map[uint64]models.Recipient
	meetings   map[uint64]models.Meeting
	messages   map[uint64]models.Message
	tombstones map[string]models.Tombstone

	nextID map[EntityKind]uint64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		records:    map[uint64]models.CollectionRecord{},
		hosts:      map[uint64]models.Host{},
		drivers:    map[uint64]models.Driver{},
		recipients: map[uint64]models.Recipient{},
		meetings:   map[uint64]models.Meeting{},
		messages:   map[uint64]models.Message{},
		tombstones: map[string]models.Tombstone{},
		nextID:     map[EntityKind]uint64{},
	}
}

// allocate returns id when pre-assigned, else the next counter value.
// The counter is always advanced past any pre-assigned id so mirrored and
// locally created rows cannot collide.
func (s *MemStore) allocate(kind EntityKind, id uint64) uint64 {
	if id == 0 {
		s.nextID[kind]++
		return s.nextID[kind]
	}
	if id > s.nextID[kind] {
		s.nextID[kind] = id
	}
	return id
}

func memSorted[T any](m map[uint64]T) []T {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Collection records

func (s *MemStore) CreateRecord(_ context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *rec
	stored.RecordID = s.allocate(KindRecord, stored.RecordID)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.UpdatedAt = time.Now().UTC()
	s.records[stored.RecordID] = stored
	return &stored, nil
}

func (s *MemStore) GetRecord(_ context.Context, id uint64) (*models.CollectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemStore) ListRecords(_ context.Context) ([]models.CollectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memSorted(s.records), nil
}

func (s *MemStore) UpdateRecord(_ context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.RecordID]; !ok {
		return nil, ErrNotFound
	}
	stored := *rec
	stored.UpdatedAt = time.Now().UTC()
	s.records[stored.RecordID] = stored
	return &stored, nil
}

func (s *MemStore) DeleteRecord(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}

func (s *MemStore) RewriteHostName(_ context.Context, oldName, newName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, rec := range s.records {
		if rec.HostName == oldName {
			rec.HostName = newName
			rec.UpdatedAt = time.Now().UTC()
			s.records[id] = rec
			n++
		}
	}
	return n, nil
}

// Hosts

func (s *MemStore) CreateHost(_ context.Context, host *models.Host) (*models.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *host
	stored.HostID = s.allocate(KindHost, stored.HostID)
	s.hosts[stored.HostID] = stored
	return &stored, nil
}

func (s *MemStore) GetHost(_ context.Context, id uint64) (*models.Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	host, ok := s.hosts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &host, nil
}

func (s *MemStore) GetHostByName(_ context.Context, name string) (*models.Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, host := range s.hosts {
		if host.Name == name {
			h := host
			return &h, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) ListHosts(_ context.Context) ([]models.Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memSorted(s.hosts), nil
}

func (s *MemStore) UpdateHost(_ context.Context, host *models.Host) (*models.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hosts[host.HostID]; !ok {
		return nil, ErrNotFound
	}
	stored := *host
	s.hosts[stored.HostID] = stored
	return &stored, nil
}

func (s *MemStore) DeleteHost(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hosts[id]; !ok {
		return false, nil
	}
	delete(s.hosts, id)
	return true, nil
}

// Drivers

func (s *MemStore) CreateDriver(_ context.Context, d *models.Driver) (*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *d
	stored.DriverID = s.allocate(KindDriver, stored.DriverID)
	s.drivers[stored.DriverID] = stored
	return &stored, nil
}

func (s *MemStore) GetDriver(_ context.Context, id uint64) (*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *MemStore) ListDrivers(_ context.Context) ([]models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memSorted(s.drivers), nil
}

func (s *MemStore) UpdateDriver(_ context.Context, d *models.Driver) (*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[d.DriverID]; !ok {
		return nil, ErrNotFound
	}
	stored := *d
	s.drivers[stored.DriverID] = stored
	return &stored, nil
}

func (s *MemStore) DeleteDriver(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[id]; !ok {
		return false, nil
	}
	delete(s.drivers, id)
	return true, nil
}

// Recipients

func (s *MemStore) CreateRecipient(_ context.Context, r *models.Recipient) (*models.Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *r
	stored.RecipientID = s.allocate(KindRecipient, stored.RecipientID)
	s.recipients[stored.RecipientID] = stored
	return &stored, nil
}

func (s *MemStore) GetRecipient(_ context.Context, id uint64) (*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemStore) ListRecipients(_ context.Context) ([]models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memSorted(s.recipients), nil
}

func (s *MemStore) UpdateRecipient(_ context.Context, r *models.Recipient) (*models.Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipients[r.RecipientID]; !ok {
		return nil, ErrNotFound
	}
	stored := *r
	s.recipients[stored.RecipientID] = stored
	return &stored, nil
}

func (s *MemStore) DeleteRecipient(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipients[id]; !ok {
		return false, nil
	}
	delete(s.recipients, id)
	return true, nil
}

// Meetings

func (s *MemStore) CreateMeeting(_ context.Context, m *models.Meeting) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *m
	stored.MeetingID = s.allocate(KindMeeting, stored.MeetingID)
	s.meetings[stored.MeetingID] = stored
	return &stored, nil
}

func (s *MemStore) GetMeeting(_ context.Context, id uint64) (*models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemStore) ListMeetings(_ context.Context) ([]models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memSorted(s.meetings), nil
}

func (s *MemStore) UpdateMeeting(_ context.Context, m *models.Meeting) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[m.MeetingID]; !ok {
		return nil, ErrNotFound
	}
	stored := *m
	s.meetings[stored.MeetingID] = stored
	return &stored, nil
}

func (s *MemStore) DeleteMeeting(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[id]; !ok {
		return false, nil
	}
	delete(s.meetings, id)
	return true, nil
}

// Messages

func (s *MemStore) CreateMessage(_ context.Context, m *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *m
	stored.MessageID = s.allocate(KindMessage, stored.MessageID)
	s.messages[stored.MessageID] = stored
	return &stored, nil
}

func (s *MemStore) ListMessages(_ context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memSorted(s.messages), nil
}

func (s *MemStore) DeleteMessage(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return false, nil
	}
	delete(s.messages, id)
	return true, nil
}

// Tombstones

func tombstoneKey(kind EntityKind, id uint64) string {
	return fmt.Sprintf("%s/%d", kind, id)
}

func (s *MemStore) PutTombstone(_ context.Context, kind EntityKind, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tombstones[tombstoneKey(kind, id)] = models.Tombstone{
		EntityKind: string(kind),
		EntityID:   id,
		DeletedAt:  time.Now().UTC(),
	}
	return nil
}

func (s *MemStore) RemoveTombstone(_ context.Context, kind EntityKind, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tombstones, tombstoneKey(kind, id))
	return nil
}

func (s *MemStore) ListTombstones(_ context.Context) ([]models.Tombstone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tombstone, 0, len(s.tombstones))
	for _, ts := range s.tombstones {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntityKind != out[j].EntityKind {
			return out[i].EntityKind < out[j].EntityKind
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out, nil
}
