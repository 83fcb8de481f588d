// drivers.go
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

// DriverHandler handles delivery driver roster routes
type DriverHandler struct {
	Store storage.Store
}

// ListDrivers handles GET /api/drivers
// @Summary List drivers
// @Tags Drivers
// @Produce json
// @Success 200 {array} models.Driver
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /drivers [get]
func (h *DriverHandler) ListDrivers(c *fiber.Ctx) error {
	drivers, err := h.Store.ListDrivers(c.Context())
	if err != nil {
		return serviceError(c, err, "listDrivers")
	}
	return utils.SuccessResponse(c, drivers, fiber.StatusOK)
}

// GetDriver handles GET /api/drivers/:id
// @Summary Get a driver
// @Tags Drivers
// @Produce json
// @Param id path int true "Driver ID"
// @Success 200 {object} models.Driver
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /drivers/{id} [get]
func (h *DriverHandler) GetDriver(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "getDriver")
	}
	driver, err := h.Store.GetDriver(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "getDriver")
	}
	return utils.SuccessResponse(c, driver, fiber.StatusOK)
}

// CreateDriver handles POST /api/drivers
// @Summary Create a driver
// @Tags Drivers
// @Accept json
// @Produce json
// @Param body body services.DriverInput true "Driver to create"
// @Success 201 {object} models.Driver
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /drivers [post]
func (h *DriverHandler) CreateDriver(c *fiber.Ctx) error {
	var in services.DriverInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "createDriver")
	}
	driver, err := services.CreateDriver(c.Context(), h.Store, in)
	if err != nil {
		return serviceError(c, err, "createDriver")
	}
	return utils.SuccessResponse(c, driver, fiber.StatusCreated)
}

// UpdateDriver handles PUT /api/drivers/:id
// @Summary Update a driver
// @Tags Drivers
// @Accept json
// @Produce json
// @Param id path int true "Driver ID"
// @Param body body services.DriverInput true "Driver fields"
// @Success 200 {object} models.Driver
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /drivers/{id} [put]
func (h *DriverHandler) UpdateDriver(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "updateDriver")
	}
	var in services.DriverInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "updateDriver")
	}
	driver, err := services.UpdateDriver(c.Context(), h.Store, id, in)
	if err != nil {
		return serviceError(c, err, "updateDriver")
	}
	return utils.SuccessResponse(c, driver, fiber.StatusOK)
}

// DeleteDriver handles DELETE /api/drivers/:id
// @Summary Delete a driver
// @Tags Drivers
// @Produce json
// @Param id path int true "Driver ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /drivers/{id} [delete]
func (h *DriverHandler) DeleteDriver(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "deleteDriver")
	}
	ok, err := h.Store.DeleteDriver(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "deleteDriver")
	}
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Driver %d not found", id))
	}
	return utils.MutationSuccessResponse(c, 1)
}
