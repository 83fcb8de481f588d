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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/types"
	"github.com/sandwichproject/opsdb/internal/utils"
)

// RecordHandler handles collection record routes
type RecordHandler struct {
	Store storage.Store
}

// batchDeleteRequest is the body for bulk record deletion.
type batchDeleteRequest struct {
	IDs []types.FlexUint64 `json:"ids"`
}

// ListRecords handles GET /api/records
// @Summary List collection records
// @Description List every sandwich collection record
// @Tags Records
// @Produce json
// @Success 200 {array} models.CollectionRecord
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /records [get]
func (h *RecordHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.Store.ListRecords(c.Context())
	if err != nil {
		return serviceError(c, err, "listRecords")
	}
	return utils.SuccessResponse(c, records, fiber.StatusOK)
}

// GetRecord handles GET /api/records/:id
// @Summary Get a collection record
// @Description Get a single collection record by ID
// @Tags Records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} models.CollectionRecord
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /records/{id} [get]
func (h *RecordHandler) GetRecord(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "getRecord")
	}
	rec, err := h.Store.GetRecord(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "getRecord")
	}
	return utils.SuccessResponse(c, rec, fiber.StatusOK)
}

// CreateRecord handles POST /api/records
// @Summary Create a collection record
// @Description Store a new sandwich collection record
// @Tags Records
// @Accept json
// @Produce json
// @Param body body services.RecordInput true "Record to create"
// @Success 201 {object} models.CollectionRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	var in services.RecordInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "createRecord")
	}
	rec, err := services.CreateRecord(c.Context(), h.Store, in)
	if err != nil {
		return serviceError(c, err, "createRecord")
	}
	return utils.SuccessResponse(c, rec, fiber.StatusCreated)
}

// UpdateRecord handles PUT /api/records/:id
// @Summary Update a collection record
// @Description Replace an existing collection record
// @Tags Records
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param body body services.RecordInput true "Record fields"
// @Success 200 {object} models.CollectionRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /records/{id} [put]
func (h *RecordHandler) UpdateRecord(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "updateRecord")
	}
	var in services.RecordInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "updateRecord")
	}
	rec, err := services.UpdateRecord(c.Context(), h.Store, id, in)
	if err != nil {
		return serviceError(c, err, "updateRecord")
	}
	return utils.SuccessResponse(c, rec, fiber.StatusOK)
}

// DeleteRecord handles DELETE /api/records/:id
// @Summary Delete a collection record
// @Description Delete a collection record by ID
// @Tags Records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /records/{id} [delete]
func (h *RecordHandler) DeleteRecord(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "deleteRecord")
	}
	ok, err := h.Store.DeleteRecord(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "deleteRecord")
	}
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Record %d not found", id))
	}
	return utils.MutationSuccessResponse(c, 1)
}

// BatchDeleteRecords handles DELETE /api/records
// @Summary Delete multiple collection records
// @Description Delete the collection records named in the request body
// @Tags Records
// @Accept json
// @Produce json
// @Param body body batchDeleteRequest true "Record IDs to delete"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /records [delete]
func (h *RecordHandler) BatchDeleteRecords(c *fiber.Ctx) error {
	var req batchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "batchDeleteRecords")
	}
	if len(req.IDs) == 0 {
		return utils.ErrorResponse(c, "No record IDs given", fiber.StatusBadRequest, "batchDeleteRecords")
	}

	ids := make([]uint64, len(req.IDs))
	for i, id := range req.IDs {
		ids[i] = uint64(id)
	}
	deleted, err := services.BatchDeleteRecords(c.Context(), h.Store, ids)
	if err != nil {
		return serviceError(c, err, "batchDeleteRecords")
	}
	return utils.MutationSuccessResponse(c, deleted)
}
