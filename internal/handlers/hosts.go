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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/utils"
)

// HostHandler handles host roster routes
type HostHandler struct {
	Store storage.Store
}

// hostUpdateResponse reports the edited host plus how many records were
// rewritten when the edit renamed it.
type hostUpdateResponse struct {
	Host             interface{} `json:"host"`
	RewrittenRecords int64       `json:"rewrittenRecords"`
}

// ListHosts handles GET /api/hosts
// @Summary List hosts
// @Description List every collection host
// @Tags Hosts
// @Produce json
// @Success 200 {array} models.Host
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /hosts [get]
func (h *HostHandler) ListHosts(c *fiber.Ctx) error {
	hosts, err := h.Store.ListHosts(c.Context())
	if err != nil {
		return serviceError(c, err, "listHosts")
	}
	return utils.SuccessResponse(c, hosts, fiber.StatusOK)
}

// GetHost handles GET /api/hosts/:id
// @Summary Get a host
// @Description Get a single host by ID
// @Tags Hosts
// @Produce json
// @Param id path int true "Host ID"
// @Success 200 {object} models.Host
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /hosts/{id} [get]
func (h *HostHandler) GetHost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "getHost")
	}
	host, err := h.Store.GetHost(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "getHost")
	}
	return utils.SuccessResponse(c, host, fiber.StatusOK)
}

// CreateHost handles POST /api/hosts
// @Summary Create a host
// @Description Register a new collection host
// @Tags Hosts
// @Accept json
// @Produce json
// @Param body body services.HostInput true "Host to create"
// @Success 201 {object} models.Host
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /hosts [post]
func (h *HostHandler) CreateHost(c *fiber.Ctx) error {
	var in services.HostInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "createHost")
	}
	host, err := services.CreateHost(c.Context(), h.Store, in)
	if err != nil {
		return serviceError(c, err, "createHost")
	}
	return utils.SuccessResponse(c, host, fiber.StatusCreated)
}

// UpdateHost handles PUT /api/hosts/:id
// @Summary Update a host
// @Description Edit a host; a name change also rewrites the host reference on its records
// @Tags Hosts
// @Accept json
// @Produce json
// @Param id path int true "Host ID"
// @Param body body services.HostInput true "Host fields"
// @Success 200 {object} hostUpdateResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /hosts/{id} [put]
func (h *HostHandler) UpdateHost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "updateHost")
	}
	var in services.HostInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "updateHost")
	}
	host, rewritten, err := services.UpdateHost(c.Context(), h.Store, id, in)
	if err != nil {
		return serviceError(c, err, "updateHost")
	}
	return utils.SuccessResponse(c, hostUpdateResponse{Host: host, RewrittenRecords: rewritten}, fiber.StatusOK)
}

// RenameHost handles POST /api/hosts/:id/rename
// @Summary Rename a host
// @Description Rename a host and rewrite the host reference on its collection records
// @Tags Hosts
// @Accept json
// @Produce json
// @Param id path int true "Host ID"
// @Param body body services.HostInput true "New host name"
// @Success 200 {object} hostUpdateResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /hosts/{id}/rename [post]
func (h *HostHandler) RenameHost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "renameHost")
	}
	var in services.HostInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "renameHost")
	}
	host, rewritten, err := services.RenameHost(c.Context(), h.Store, id, in.Name)
	if err != nil {
		return serviceError(c, err, "renameHost")
	}
	return utils.SuccessResponse(c, hostUpdateResponse{Host: host, RewrittenRecords: rewritten}, fiber.StatusOK)
}

// DeleteHost handles DELETE /api/hosts/:id
// @Summary Delete a host
// @Description Delete a host by ID
// @Tags Hosts
// @Produce json
// @Param id path int true "Host ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /hosts/{id} [delete]
func (h *HostHandler) DeleteHost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "deleteHost")
	}
	ok, err := h.Store.DeleteHost(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "deleteHost")
	}
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Host %d not found", id))
	}
	return utils.MutationSuccessResponse(c, 1)
}
