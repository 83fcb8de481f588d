// facade_roster.go
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
	"go.uber.org/zap"
)

// Façade operations for the roster entities (drivers, recipients, meetings,
// messages). Same primary/fallback contract as the record and host paths.

// Drivers

func (f *Facade) CreateDriver(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	created, err := callPrimary(f, func() (*models.Driver, error) {
		return f.primary.CreateDriver(ctx, d)
	})
	if err != nil {
		f.log.Warn("primary create failed, creating on fallback", zap.Error(err))
		return f.fallback.CreateDriver(ctx, d)
	}
	f.mirror("create driver", func() error {
		clone := *created
		_, err := f.fallback.CreateDriver(ctx, &clone)
		return err
	})
	return created, nil
}

func (f *Facade) GetDriver(ctx context.Context, id uint64) (*models.Driver, error) {
	if f.IsSuppressed(KindDriver, id) {
		return nil, ErrNotFound
	}
	return fetch(f, "get driver",
		func() (*models.Driver, error) { return f.primary.GetDriver(ctx, id) },
		func() (*models.Driver, error) { return f.fallback.GetDriver(ctx, id) })
}

func (f *Facade) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	drivers, err := fetch(f, "list drivers",
		func() ([]models.Driver, error) { return f.primary.ListDrivers(ctx) },
		func() ([]models.Driver, error) { return f.fallback.ListDrivers(ctx) })
	if err != nil {
		return nil, err
	}
	return filterSuppressed(f, KindDriver, drivers,
		func(d models.Driver) uint64 { return d.DriverID }), nil
}

func (f *Facade) UpdateDriver(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	updated, err := fetch(f, "update driver",
		func() (*models.Driver, error) { return f.primary.UpdateDriver(ctx, d) },
		func() (*models.Driver, error) { return f.fallback.UpdateDriver(ctx, d) })
	if err != nil {
		return nil, err
	}
	f.mirror("update driver", func() error {
		clone := *updated
		if _, err := f.fallback.UpdateDriver(ctx, &clone); errors.Is(err, ErrNotFound) {
			_, err = f.fallback.CreateDriver(ctx, &clone)
			return err
		} else if err != nil {
			return err
		}
		return nil
	})
	return updated, nil
}

func (f *Facade) DeleteDriver(ctx context.Context, id uint64) (bool, error) {
	return deleteOp(ctx, f, KindDriver, id,
		func() (bool, error) { return f.primary.DeleteDriver(ctx, id) },
		func() (bool, error) { return f.fallback.DeleteDriver(ctx, id) })
}

// Recipients

func (f *Facade) CreateRecipient(ctx context.Context, r *models.Recipient) (*models.Recipient, error) {
	created, err := callPrimary(f, func() (*models.Recipient, error) {
		return f.primary.CreateRecipient(ctx, r)
	})
	if err != nil {
		f.log.Warn("primary create failed, creating on fallback", zap.Error(err))
		return f.fallback.CreateRecipient(ctx, r)
	}
	f.mirror("create recipient", func() error {
		clone := *created
		_, err := f.fallback.CreateRecipient(ctx, &clone)
		return err
	})
	return created, nil
}

func (f *Facade) GetRecipient(ctx context.Context, id uint64) (*models.Recipient, error) {
	if f.IsSuppressed(KindRecipient, id) {
		return nil, ErrNotFound
	}
	return fetch(f, "get recipient",
		func() (*models.Recipient, error) { return f.primary.GetRecipient(ctx, id) },
		func() (*models.Recipient, error) { return f.fallback.GetRecipient(ctx, id) })
}

func (f *Facade) ListRecipients(ctx context.Context) ([]models.Recipient, error) {
	recipients, err := fetch(f, "list recipients",
		func() ([]models.Recipient, error) { return f.primary.ListRecipients(ctx) },
		func() ([]models.Recipient, error) { return f.fallback.ListRecipients(ctx) })
	if err != nil {
		return nil, err
	}
	return filterSuppressed(f, KindRecipient, recipients,
		func(r models.Recipient) uint64 { return r.RecipientID }), nil
}

func (f *Facade) UpdateRecipient(ctx context.Context, r *models.Recipient) (*models.Recipient, error) {
	updated, err := fetch(f, "update recipient",
		func() (*models.Recipient, error) { return f.primary.UpdateRecipient(ctx, r) },
		func() (*models.Recipient, error) { return f.fallback.UpdateRecipient(ctx, r) })
	if err != nil {
		return nil, err
	}
	f.mirror("update recipient", func() error {
		clone := *updated
		if _, err := f.fallback.UpdateRecipient(ctx, &clone); errors.Is(err, ErrNotFound) {
			_, err = f.fallback.CreateRecipient(ctx, &clone)
			return err
		} else if err != nil {
			return err
		}
		return nil
	})
	return updated, nil
}

func (f *Facade) DeleteRecipient(ctx context.Context, id uint64) (bool, error) {
	return deleteOp(ctx, f, KindRecipient, id,
		func() (bool, error) { return f.primary.DeleteRecipient(ctx, id) },
		func() (bool, error) { return f.fallback.DeleteRecipient(ctx, id) })
}

// Meetings

func (f *Facade) CreateMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	created, err := callPrimary(f, func() (*models.Meeting, error) {
		return f.primary.CreateMeeting(ctx, m)
	})
	if err != nil {
		f.log.Warn("primary create failed, creating on fallback", zap.Error(err))
		return f.fallback.CreateMeeting(ctx, m)
	}
	f.mirror("create meeting", func() error {
		clone := *created
		_, err := f.fallback.CreateMeeting(ctx, &clone)
		return err
	})
	return created, nil
}

func (f *Facade) GetMeeting(ctx context.Context, id uint64) (*models.Meeting, error) {
	if f.IsSuppressed(KindMeeting, id) {
		return nil, ErrNotFound
	}
	return fetch(f, "get meeting",
		func() (*models.Meeting, error) { return f.primary.GetMeeting(ctx, id) },
		func() (*models.Meeting, error) { return f.fallback.GetMeeting(ctx, id) })
}

func (f *Facade) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	meetings, err := fetch(f, "list meetings",
		func() ([]models.Meeting, error) { return f.primary.ListMeetings(ctx) },
		func() ([]models.Meeting, error) { return f.fallback.ListMeetings(ctx) })
	if err != nil {
		return nil, err
	}
	return filterSuppressed(f, KindMeeting, meetings,
		func(m models.Meeting) uint64 { return m.MeetingID }), nil
}

func (f *Facade) UpdateMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	updated, err := fetch(f, "update meeting",
		func() (*models.Meeting, error) { return f.primary.UpdateMeeting(ctx, m) },
		func() (*models.Meeting, error) { return f.fallback.UpdateMeeting(ctx, m) })
	if err != nil {
		return nil, err
	}
	f.mirror("update meeting", func() error {
		clone := *updated
		if _, err := f.fallback.UpdateMeeting(ctx, &clone); errors.Is(err, ErrNotFound) {
			_, err = f.fallback.CreateMeeting(ctx, &clone)
			return err
		} else if err != nil {
			return err
		}
		return nil
	})
	return updated, nil
}

func (f *Facade) DeleteMeeting(ctx context.Context, id uint64) (bool, error) {
	return deleteOp(ctx, f, KindMeeting, id,
		func() (bool, error) { return f.primary.DeleteMeeting(ctx, id) },
		func() (bool, error) { return f.fallback.DeleteMeeting(ctx, id) })
}

// Messages

func (f *Facade) CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error) {
	created, err := callPrimary(f, func() (*models.Message, error) {
		return f.primary.CreateMessage(ctx, m)
	})
	if err != nil {
		f.log.Warn("primary create failed, creating on fallback", zap.Error(err))
		return f.fallback.CreateMessage(ctx, m)
	}
	f.mirror("create message", func() error {
		clone := *created
		_, err := f.fallback.CreateMessage(ctx, &clone)
		return err
	})
	return created, nil
}

func (f *Facade) ListMessages(ctx context.Context) ([]models.Message, error) {
	msgs, err := fetch(f, "list messages",
		func() ([]models.Message, error) { return f.primary.ListMessages(ctx) },
		func() ([]models.Message, error) { return f.fallback.ListMessages(ctx) })
	if err != nil {
		return nil, err
	}
	return filterSuppressed(f, KindMessage, msgs,
		func(m models.Message) uint64 { return m.MessageID }), nil
}

func (f *Facade) DeleteMessage(ctx context.Context, id uint64) (bool, error) {
	return deleteOp(ctx, f, KindMessage, id,
		func() (bool, error) { return f.primary.DeleteMessage(ctx, id) },
		func() (bool, error) { return f.fallback.DeleteMessage(ctx, id) })
}
