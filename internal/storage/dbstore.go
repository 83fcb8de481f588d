// dbstore.go
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
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
	"gorm.io/gorm"
)

// DBStore is the durable primary store backed by GORM.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore wraps an open GORM connection as a Store.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func dbGet[T any](ctx context.Context, db *gorm.DB, id uint64) (*T, error) {
	var v T
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func dbList[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var vs []T
	if err := db.WithContext(ctx).Order(order).Find(&vs).Error; err != nil {
		return nil, err
	}
	return vs, nil
}

func dbCreate[T any](ctx context.Context, db *gorm.DB, v *T) (*T, error) {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func dbUpdate[T any](ctx context.Context, db *gorm.DB, id uint64, v *T) (*T, error) {
	var existing T
	if err := db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := db.WithContext(ctx).Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

func dbDelete[T any](ctx context.Context, db *gorm.DB, id uint64) (bool, error) {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Collection records

func (s *DBStore) CreateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	return dbCreate(ctx, s.db, rec)
}

func (s *DBStore) GetRecord(ctx context.Context, id uint64) (*models.CollectionRecord, error) {
	return dbGet[models.CollectionRecord](ctx, s.db, id)
}

func (s *DBStore) ListRecords(ctx context.Context) ([]models.CollectionRecord, error) {
	return dbList[models.CollectionRecord](ctx, s.db, "record_id")
}

func (s *DBStore) UpdateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	return dbUpdate(ctx, s.db, rec.RecordID, rec)
}

func (s *DBStore) DeleteRecord(ctx context.Context, id uint64) (bool, error) {
	return dbDelete[models.CollectionRecord](ctx, s.db, id)
}

func (s *DBStore) RewriteHostName(ctx context.Context, oldName, newName string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.CollectionRecord{}).
		Where("host_name = ?", oldName).
		Update("host_name", newName)
	return res.RowsAffected, res.Error
}

// Hosts

func (s *DBStore) CreateHost(ctx context.Context, host *models.Host) (*models.Host, error) {
	return dbCreate(ctx, s.db, host)
}

func (s *DBStore) GetHost(ctx context.Context, id uint64) (*models.Host, error) {
	return dbGet[models.Host](ctx, s.db, id)
}

func (s *DBStore) GetHostByName(ctx context.Context, name string) (*models.Host, error) {
	var host models.Host
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&host).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &host, nil
}

func (s *DBStore) ListHosts(ctx context.Context) ([]models.Host, error) {
	return dbList[models.Host](ctx, s.db, "host_id")
}

func (s *DBStore) UpdateHost(ctx context.Context, host *models.Host) (*models.Host, error) {
	return dbUpdate(ctx, s.db, host.HostID, host)
}

func (s *DBStore) DeleteHost(ctx context.Context, id uint64) (bool, error) {
	return dbDelete[models.Host](ctx, s.db, id)
}

// Drivers

func (s *DBStore) CreateDriver(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	return dbCreate(ctx, s.db, d)
}

func (s *DBStore) GetDriver(ctx context.Context, id uint64) (*models.Driver, error) {
	return dbGet[models.Driver](ctx, s.db, id)
}

func (s *DBStore) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return dbList[models.Driver](ctx, s.db, "driver_id")
}

func (s *DBStore) UpdateDriver(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	return dbUpdate(ctx, s.db, d.DriverID, d)
}

func (s *DBStore) DeleteDriver(ctx context.Context, id uint64) (bool, error) {
	return dbDelete[models.Driver](ctx, s.db, id)
}

// Recipients

func (s *DBStore) CreateRecipient(ctx context.Context, r *models.Recipient) (*models.Recipient, error) {
	return dbCreate(ctx, s.db, r)
}

func (s *DBStore) GetRecipient(ctx context.Context, id uint64) (*models.Recipient, error) {
	return dbGet[models.Recipient](ctx, s.db, id)
}

func (s *DBStore) ListRecipients(ctx context.Context) ([]models.Recipient, error) {
	return dbList[models.Recipient](ctx, s.db, "recipient_id")
}

func (s *DBStore) UpdateRecipient(ctx context.Context, r *models.Recipient) (*models.Recipient, error) {
	return dbUpdate(ctx, s.db, r.RecipientID, r)
}

func (s *DBStore) DeleteRecipient(ctx context.Context, id uint64) (bool, error) {
	return dbDelete[models.Recipient](ctx, s.db, id)
}

// Meetings

func (s *DBStore) CreateMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	return dbCreate(ctx, s.db, m)
}

func (s *DBStore) GetMeeting(ctx context.Context, id uint64) (*models.Meeting, error) {
	return dbGet[models.Meeting](ctx, s.db, id)
}

func (s *DBStore) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	return dbList[models.Meeting](ctx, s.db, "meeting_id")
}

func (s *DBStore) UpdateMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	return dbUpdate(ctx, s.db, m.MeetingID, m)
}

func (s *DBStore) DeleteMeeting(ctx context.Context, id uint64) (bool, error) {
	return dbDelete[models.Meeting](ctx, s.db, id)
}

// Messages

func (s *DBStore) CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error) {
	return dbCreate(ctx, s.db, m)
}

func (s *DBStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	return dbList[models.Message](ctx, s.db, "message_id")
}

func (s *DBStore) DeleteMessage(ctx context.Context, id uint64) (bool, error) {
	return dbDelete[models.Message](ctx, s.db, id)
}

// Tombstones

func (s *DBStore) PutTombstone(ctx context.Context, kind EntityKind, id uint64) error {
	ts := models.Tombstone{EntityKind: string(kind), EntityID: id, DeletedAt: time.Now().UTC()}
	// Re-deleting an already tombstoned ID is a no-op.
	err := s.db.WithContext(ctx).Create(&ts).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (s *DBStore) RemoveTombstone(ctx context.Context, kind EntityKind, id uint64) error {
	return s.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", string(kind), id).
		Delete(&models.Tombstone{}).Error
}

func (s *DBStore) ListTombstones(ctx context.Context) ([]models.Tombstone, error) {
	return dbList[models.Tombstone](ctx, s.db, "tombstone_id")
}
