// roster.go
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
	"strings"
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/storage"
)

// DriverInput is the payload for creating or editing a driver.
type DriverInput struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Active *bool  `json:"active,omitempty"`
}

// RecipientInput is the payload for creating or editing a recipient org.
type RecipientInput struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone,omitempty"`
	Region string `json:"region,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// MeetingInput is the payload for creating or editing a meeting.
type MeetingInput struct {
	Title       string    `json:"title" validate:"required"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// MessageInput is the payload for posting a broadcast message.
type MessageInput struct {
	Sender string `json:"sender" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// CreateDriver validates and stores a new driver.
func CreateDriver(ctx context.Context, store storage.Store, in DriverInput) (*models.Driver, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	d := &models.Driver{
		Name:   strings.TrimSpace(in.Name),
		Phone:  strings.TrimSpace(in.Phone),
		Email:  strings.TrimSpace(in.Email),
		Active: true,
	}
	if in.Active != nil {
		d.Active = *in.Active
	}
	return store.CreateDriver(ctx, d)
}

// UpdateDriver validates and applies an edit to an existing driver.
func UpdateDriver(ctx context.Context, store storage.Store, id uint64, in DriverInput) (*models.Driver, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	d, err := store.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = strings.TrimSpace(in.Name)
	d.Phone = strings.TrimSpace(in.Phone)
	d.Email = strings.TrimSpace(in.Email)
	if in.Active != nil {
		d.Active = *in.Active
	}
	return store.UpdateDriver(ctx, d)
}

// CreateRecipient validates and stores a new recipient organization.
func CreateRecipient(ctx context.Context, store storage.Store, in RecipientInput) (*models.Recipient, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	r := &models.Recipient{
		Name:   strings.TrimSpace(in.Name),
		Phone:  strings.TrimSpace(in.Phone),
		Region: strings.TrimSpace(in.Region),
		Active: true,
	}
	if in.Active != nil {
		r.Active = *in.Active
	}
	return store.CreateRecipient(ctx, r)
}

// UpdateRecipient validates and applies an edit to an existing recipient.
func UpdateRecipient(ctx context.Context, store storage.Store, id uint64, in RecipientInput) (*models.Recipient, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	r, err := store.GetRecipient(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Name = strings.TrimSpace(in.Name)
	r.Phone = strings.TrimSpace(in.Phone)
	r.Region = strings.TrimSpace(in.Region)
	if in.Active != nil {
		r.Active = *in.Active
	}
	return store.UpdateRecipient(ctx, r)
}

// CreateMeeting validates and stores a new meeting.
func CreateMeeting(ctx context.Context, store storage.Store, in MeetingInput) (*models.Meeting, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return store.CreateMeeting(ctx, &models.Meeting{
		Title:       strings.TrimSpace(in.Title),
		ScheduledAt: in.ScheduledAt.UTC(),
		Location:    strings.TrimSpace(in.Location),
		Notes:       in.Notes,
	})
}

// UpdateMeeting validates and applies an edit to an existing meeting.
func UpdateMeeting(ctx context.Context, store storage.Store, id uint64, in MeetingInput) (*models.Meeting, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	m, err := store.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Title = strings.TrimSpace(in.Title)
	m.ScheduledAt = in.ScheduledAt.UTC()
	m.Location = strings.TrimSpace(in.Location)
	m.Notes = in.Notes
	return store.UpdateMeeting(ctx, m)
}

// CreateMessage validates and stores a broadcast message.
func CreateMessage(ctx context.Context, store storage.Store, in MessageInput) (*models.Message, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return store.CreateMessage(ctx, &models.Message{
		Sender: strings.TrimSpace(in.Sender),
		Body:   in.Body,
		SentAt: time.Now().UTC(),
	})
}
