// records.go
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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/types"
)

// ErrValidation marks a rejected payload; handlers translate it to a 400.
var ErrValidation = errors.New("invalid input")

var validate = validator.New()

// RecordInput is the payload for creating or editing a collection record.
type RecordInput struct {
	CollectionDate       string                                 `json:"collectionDate" validate:"required,datetime=2006-01-02"`
	HostName             string                                 `json:"hostName" validate:"required"`
	IndividualSandwiches int                                    `json:"individualSandwiches" validate:"gte=0"`
	GroupCollections     types.FlexList[models.GroupCollection] `json:"groupCollections"`
	SubmittedAt          *time.Time                             `json:"submittedAt,omitempty"`
}

func (in *RecordInput) toModel() (*models.CollectionRecord, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	groups := in.GroupCollections.Slice()
	for _, g := range groups {
		if strings.TrimSpace(g.Name) == "" || g.Count < 0 {
			return nil, fmt.Errorf("%w: group collections need a name and a count >= 0", ErrValidation)
		}
	}
	if groups == nil {
		groups = []models.GroupCollection{}
	}
	raw, err := json.Marshal(groups)
	if err != nil {
		return nil, err
	}

	submitted := time.Now().UTC()
	if in.SubmittedAt != nil {
		submitted = in.SubmittedAt.UTC()
	}

	return &models.CollectionRecord{
		CollectionDate:       in.CollectionDate,
		HostName:             strings.TrimSpace(in.HostName),
		IndividualSandwiches: in.IndividualSandwiches,
		GroupCollections:     models.NewJSON(raw),
		SubmittedAt:          submitted,
	}, nil
}

// CreateRecord validates and stores a new collection record.
func CreateRecord(ctx context.Context, store storage.Store, in RecordInput) (*models.CollectionRecord, error) {
	rec, err := in.toModel()
	if err != nil {
		return nil, err
	}
	return store.CreateRecord(ctx, rec)
}

// UpdateRecord validates and applies an edit to an existing record.
func UpdateRecord(ctx context.Context, store storage.Store, id uint64, in RecordInput) (*models.CollectionRecord, error) {
	rec, err := in.toModel()
	if err != nil {
		return nil, err
	}
	existing, err := store.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.RecordID = id
	rec.CreatedAt = existing.CreatedAt
	return store.UpdateRecord(ctx, rec)
}

// BatchDeleteRecords deletes the given record IDs through the façade and
// returns how many rows were actually removed.
func BatchDeleteRecords(ctx context.Context, store storage.Store, ids []uint64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		ok, err := store.DeleteRecord(ctx, id)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}
