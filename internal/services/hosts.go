// hosts.go
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
	"errors"
	"fmt"
	"strings"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/storage"
)

// HostInput is the payload for creating or editing a host.
type HostInput struct {
	Name   string `json:"name" validate:"required"`
	Active *bool  `json:"active,omitempty"`
}

// CreateHost validates and stores a new host.
func CreateHost(ctx context.Context, store storage.Store, in HostInput) (*models.Host, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	name := strings.TrimSpace(in.Name)
	if _, err := store.GetHostByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: host %q already exists", ErrValidation, name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	host := &models.Host{Name: name, Active: true}
	if in.Active != nil {
		host.Active = *in.Active
	}
	return store.CreateHost(ctx, host)
}

// UpdateHost applies status or name edits. Name changes go through
// RenameHost so record references stay consistent.
func UpdateHost(ctx context.Context, store storage.Store, id uint64, in HostInput) (*models.Host, int64, error) {
	if err := validate.Struct(in); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	host, err := store.GetHost(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	var rewritten int64
	name := strings.TrimSpace(in.Name)
	if name != host.Name {
		host, rewritten, err = RenameHost(ctx, store, id, name)
		if err != nil {
			return nil, 0, err
		}
	}
	if in.Active != nil && *in.Active != host.Active {
		host.Active = *in.Active
		host, err = store.UpdateHost(ctx, host)
		if err != nil {
			return nil, rewritten, err
		}
	}
	return host, rewritten, nil
}

// RenameHost changes a host's name and bulk-rewrites the host reference on
// every matching collection record. Records reference hosts by name string,
// not by foreign key, so the two writes must travel together.
func RenameHost(ctx context.Context, store storage.Store, id uint64, newName string) (*models.Host, int64, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, 0, fmt.Errorf("%w: host name required", ErrValidation)
	}

	host, err := store.GetHost(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if host.Name == newName {
		return host, 0, nil
	}
	if other, err := store.GetHostByName(ctx, newName); err == nil && other.HostID != id {
		return nil, 0, fmt.Errorf("%w: host %q already exists", ErrValidation, newName)
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, 0, err
	}

	oldName := host.Name
	host.Name = newName
	host, err = store.UpdateHost(ctx, host)
	if err != nil {
		return nil, 0, err
	}

	rewritten, err := store.RewriteHostName(ctx, oldName, newName)
	if err != nil {
		return host, rewritten, err
	}
	return host, rewritten, nil
}
