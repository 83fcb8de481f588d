// meetings.go
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

// MeetingHandler handles volunteer meeting routes
type MeetingHandler struct {
	Store storage.Store
}

// MessageHandler handles broadcast message routes
type MessageHandler struct {
	Store storage.Store
}

// ListMeetings handles GET /api/meetings
// @Summary List meetings
// @Tags Meetings
// @Produce json
// @Success 200 {array} models.Meeting
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /meetings [get]
func (h *MeetingHandler) ListMeetings(c *fiber.Ctx) error {
	meetings, err := h.Store.ListMeetings(c.Context())
	if err != nil {
		return serviceError(c, err, "listMeetings")
	}
	return utils.SuccessResponse(c, meetings, fiber.StatusOK)
}

// GetMeeting handles GET /api/meetings/:id
// @Summary Get a meeting
// @Tags Meetings
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} models.Meeting
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /meetings/{id} [get]
func (h *MeetingHandler) GetMeeting(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "getMeeting")
	}
	meeting, err := h.Store.GetMeeting(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "getMeeting")
	}
	return utils.SuccessResponse(c, meeting, fiber.StatusOK)
}

// CreateMeeting handles POST /api/meetings
// @Summary Create a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param body body services.MeetingInput true "Meeting to create"
// @Success 201 {object} models.Meeting
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /meetings [post]
func (h *MeetingHandler) CreateMeeting(c *fiber.Ctx) error {
	var in services.MeetingInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "createMeeting")
	}
	meeting, err := services.CreateMeeting(c.Context(), h.Store, in)
	if err != nil {
		return serviceError(c, err, "createMeeting")
	}
	return utils.SuccessResponse(c, meeting, fiber.StatusCreated)
}

// UpdateMeeting handles PUT /api/meetings/:id
// @Summary Update a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Param body body services.MeetingInput true "Meeting fields"
// @Success 200 {object} models.Meeting
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /meetings/{id} [put]
func (h *MeetingHandler) UpdateMeeting(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "updateMeeting")
	}
	var in services.MeetingInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "updateMeeting")
	}
	meeting, err := services.UpdateMeeting(c.Context(), h.Store, id, in)
	if err != nil {
		return serviceError(c, err, "updateMeeting")
	}
	return utils.SuccessResponse(c, meeting, fiber.StatusOK)
}

// DeleteMeeting handles DELETE /api/meetings/:id
// @Summary Delete a meeting
// @Tags Meetings
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) DeleteMeeting(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "deleteMeeting")
	}
	ok, err := h.Store.DeleteMeeting(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "deleteMeeting")
	}
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Meeting %d not found", id))
	}
	return utils.MutationSuccessResponse(c, 1)
}

// ListMessages handles GET /api/messages
// @Summary List broadcast messages
// @Tags Messages
// @Produce json
// @Success 200 {array} models.Message
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /messages [get]
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	messages, err := h.Store.ListMessages(c.Context())
	if err != nil {
		return serviceError(c, err, "listMessages")
	}
	return utils.SuccessResponse(c, messages, fiber.StatusOK)
}

// CreateMessage handles POST /api/messages
// @Summary Post a broadcast message
// @Tags Messages
// @Accept json
// @Produce json
// @Param body body services.MessageInput true "Message to post"
// @Success 201 {object} models.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	var in services.MessageInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err), fiber.StatusBadRequest, "createMessage")
	}
	message, err := services.CreateMessage(c.Context(), h.Store, in)
	if err != nil {
		return serviceError(c, err, "createMessage")
	}
	return utils.SuccessResponse(c, message, fiber.StatusCreated)
}

// DeleteMessage handles DELETE /api/messages/:id
// @Summary Delete a broadcast message
// @Tags Messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "deleteMessage")
	}
	ok, err := h.Store.DeleteMessage(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "deleteMessage")
	}
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Message %d not found", id))
	}
	return utils.MutationSuccessResponse(c, 1)
}
