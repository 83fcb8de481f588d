// store.go
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

	"github.com/sandwichproject/opsdb/internal/models"
)

// ErrNotFound reports a genuine absence, as opposed to a storage failure.
// Callers and the façade treat the two differently: absence is a legitimate
// result, any other error marks the backing store as unhealthy.
var ErrNotFound = errors.New("not found")

// EntityKind identifies an entity family for suppression and tombstones.
type EntityKind string

const (
	KindRecord    EntityKind = "record"
	KindHost      EntityKind = "host"
	KindDriver    EntityKind = "driver"
	KindRecipient EntityKind = "recipient"
	KindMeeting   EntityKind = "meeting"
	KindMessage   EntityKind = "message"
)

// Store is the storage contract shared by the database-backed primary store,
// the in-memory fallback store, and the façade that fronts both. Delete
// operations return (false, nil) for a not-found no-op; every other absence
// is reported as ErrNotFound.
type Store interface {
	// Collection records
	CreateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error)
	GetRecord(ctx context.Context, id uint64) (*models.CollectionRecord, error)
	ListRecords(ctx context.Context) ([]models.CollectionRecord, error)
	UpdateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error)
	DeleteRecord(ctx context.Context, id uint64) (bool, error)
	// RewriteHostName renames the host reference on every matching record
	// and returns the number of rewritten rows.
	RewriteHostName(ctx context.Context, oldName, newName string) (int64, error)

	// Hosts
	CreateHost(ctx context.Context, host *models.Host) (*models.Host, error)
	GetHost(ctx context.Context, id uint64) (*models.Host, error)
	GetHostByName(ctx context.Context, name string) (*models.Host, error)
	ListHosts(ctx context.Context) ([]models.Host, error)
	UpdateHost(ctx context.Context, host *models.Host) (*models.Host, error)
	DeleteHost(ctx context.Context, id uint64) (bool, error)

	// Drivers
	CreateDriver(ctx context.Context, d *models.Driver) (*models.Driver, error)
	GetDriver(ctx context.Context, id uint64) (*models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	UpdateDriver(ctx context.Context, d *models.Driver) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id uint64) (bool, error)

	// Recipients
	CreateRecipient(ctx context.Context, r *models.Recipient) (*models.Recipient, error)
	GetRecipient(ctx context.Context, id uint64) (*models.Recipient, error)
	ListRecipients(ctx context.Context) ([]models.Recipient, error)
	UpdateRecipient(ctx context.Context, r *models.Recipient) (*models.Recipient, error)
	DeleteRecipient(ctx context.Context, id uint64) (bool, error)

	// Meetings
	CreateMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error)
	GetMeeting(ctx context.Context, id uint64) (*models.Meeting, error)
	ListMeetings(ctx context.Context) ([]models.Meeting, error)
	UpdateMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, id uint64) (bool, error)

	// Messages
	CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id uint64) (bool, error)
}

// TombstoneStore is an optional extension for stores that can persist
// deletion markers. The façade uses it best-effort so the suppression set
// survives restarts.
type TombstoneStore interface {
	PutTombstone(ctx context.Context, kind EntityKind, id uint64) error
	RemoveTombstone(ctx context.Context, kind EntityKind, id uint64) error
	ListTombstones(ctx context.Context) ([]models.Tombstone, error)
}
