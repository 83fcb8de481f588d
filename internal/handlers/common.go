// common.go
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
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/utils"
)

// parseID extracts the numeric :id route parameter.
func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return id, nil
}

// serviceError maps service-layer errors onto HTTP responses.
func serviceError(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType)
	case errors.Is(err, storage.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
