// reports.go
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

// ReportHandler handles dashboard report routes
type ReportHandler struct {
	Store storage.Store
}

// GetSummary handles GET /api/reports/summary
// @Summary Dashboard totals
// @Description Totals and per-host breakdown over all collection records
// @Tags Reports
// @Produce json
// @Success 200 {object} services.Summary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/summary [get]
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := services.SummaryReport(c.Context(), h.Store)
	if err != nil {
		return serviceError(c, err, "summaryReport")
	}
	return utils.SuccessResponse(c, summary, fiber.StatusOK)
}
