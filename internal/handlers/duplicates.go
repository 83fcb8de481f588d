// duplicates.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/utils"
)

// DuplicateHandler handles duplicate and suspicious record analysis routes
type DuplicateHandler struct {
	Store storage.Store
}

// GetReport handles GET /api/duplicates
// @Summary Analyze records
// @Description Scan all collection records for exact duplicates and suspicious entries. Read-only.
// @Tags Duplicates
// @Produce json
// @Success 200 {object} analyzer.Report
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /duplicates [get]
func (h *DuplicateHandler) GetReport(c *fiber.Ctx) error {
	report, err := services.AnalyzeRecords(c.Context(), h.Store)
	if err != nil {
		return serviceError(c, err, "duplicateReport")
	}
	return utils.SuccessResponse(c, report, fiber.StatusOK)
}

// CleanAll handles POST /api/duplicates/clean
// @Summary Clean all duplicate groups
// @Description Delete the redundant members of every exact-duplicate group, keeping the latest submission of each
// @Tags Duplicates
// @Produce json
// @Success 200 {object} services.CleanupResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /duplicates/clean [post]
func (h *DuplicateHandler) CleanAll(c *fiber.Ctx) error {
	result, err := services.CleanAllDuplicates(c.Context(), h.Store)
	if err != nil {
		return serviceError(c, err, "cleanDuplicates")
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// CleanGroup handles POST /api/duplicates/clean/:key
// @Summary Clean one duplicate group
// @Description Delete the redundant members of a single duplicate group by its business key
// @Tags Duplicates
// @Produce json
// @Param key path string true "Duplicate group key"
// @Success 200 {object} services.CleanupResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /duplicates/clean/{key} [post]
func (h *DuplicateHandler) CleanGroup(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return utils.ErrorResponse(c, "Duplicate group key required", fiber.StatusBadRequest, "cleanDuplicateGroup")
	}
	result, err := services.CleanDuplicateGroup(c.Context(), h.Store, key)
	if err != nil {
		return serviceError(c, err, "cleanDuplicateGroup")
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// CleanSuspicious handles POST /api/duplicates/suspicious/clean
// @Summary Clean suspicious records
// @Description Delete every record currently flagged by the suspicious-entry heuristics
// @Tags Duplicates
// @Produce json
// @Success 200 {object} services.CleanupResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /duplicates/suspicious/clean [post]
func (h *DuplicateHandler) CleanSuspicious(c *fiber.Ctx) error {
	result, err := services.CleanSuspicious(c.Context(), h.Store)
	if err != nil {
		return serviceError(c, err, "cleanSuspicious")
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
