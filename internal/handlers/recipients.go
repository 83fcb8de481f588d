// recipients.go
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
	"github.com/sandwichproject/opsdb/internal/utils"
)

// RecipientHandler handles recipient organization roster routes
type RecipientHandler struct {
	Store storage.Store
}

// ListRecipients handles GET /api/recipients
// @Summary List recipient organizations
// @Tags Recipients
// @Produce json
// @Success 200 {array} models.Recipient
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipients [get]
func (h *RecipientHandler) ListRecipients(c *fiber.Ctx) error {
	recipients, err := h.Store.ListRecipients(c.Context())
	if err != nil {
		return serviceError(c, err, "listRecipients")
	}
	return utils.SuccessResponse(c, recipients, fiber.StatusOK)
}

// GetRecipient handles GET /api/recipients/:id
// @Summary Get a recipient organization
// @Tags Recipients
// @Produce json
// @Param id path int true "Recipient ID"
// @Success 200 {object} models.Recipient
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipients/{id} [get]
func (h *RecipientHandler) GetRecipient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "getRecipient")
	}
	recipient, err := h.Store.GetRecipient(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "getRecipient")
	}
	return utils.SuccessResponse(c, recipient, fiber.StatusOK)
}

// CreateRecipient handles POST /api/recipients
// @Summary Create a recipient organization
// @Tags Recipients
// @Accept json
// @Produce json
// @Param body body services.RecipientInput true "Recipient to create"
// @Success 201 {object} models.Recipient
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /recipients [post]
func (h *RecipientHandler) CreateRecipient(c *fiber.Ctx) error {
	var in services.RecipientInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "createRecipient")
	}
	recipient, err := services.CreateRecipient(c.Context(), h.Store, in)
	if err != nil {
		return serviceError(c, err, "createRecipient")
	}
	return utils.SuccessResponse(c, recipient, fiber.StatusCreated)
}

// UpdateRecipient handles PUT /api/recipients/:id
// @Summary Update a recipient organization
// @Tags Recipients
// @Accept json
// @Produce json
// @Param id path int true "Recipient ID"
// @Param body body services.RecipientInput true "Recipient fields"
// @Success 200 {object} models.Recipient
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipients/{id} [put]
func (h *RecipientHandler) UpdateRecipient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "updateRecipient")
	}
	var in services.RecipientInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "updateRecipient")
	}
	recipient, err := services.UpdateRecipient(c.Context(), h.Store, id, in)
	if err != nil {
		return serviceError(c, err, "updateRecipient")
	}
	return utils.SuccessResponse(c, recipient, fiber.StatusOK)
}

// DeleteRecipient handles DELETE /api/recipients/:id
// @Summary Delete a recipient organization
// @Tags Recipients
// @Produce json
// @Param id path int true "Recipient ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipients/{id} [delete]
func (h *RecipientHandler) DeleteRecipient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "deleteRecipient")
	}
	ok, err := h.Store.DeleteRecipient(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "deleteRecipient")
	}
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Recipient %d not found", id))
	}
	return utils.MutationSuccessResponse(c, 1)
}
