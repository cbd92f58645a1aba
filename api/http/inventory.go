// Copyright 2024 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/model"
)

// maxReportSize bounds the size of an inventory report body
const maxReportSize = 1 << 20

// InventoryController receives the device reports
type InventoryController struct {
	app app.App
}

// NewInventoryController returns a new InventoryController
func NewInventoryController(app app.App) *InventoryController {
	return &InventoryController{app: app}
}

// SubmitReport responds to POST /reports. The body is the report as sent
// by the agent; the device token, if any, travels as a bearer token.
func (h InventoryController) SubmitReport(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxReportSize))
	if err != nil {
		renderAppError(c, errBadRequest(errors.Wrap(err, "failed to read request body")))
		return
	}
	report, err := model.ParseReport(body, extractTokenFromRequest(c.Request))
	if err != nil {
		renderAppError(c, err)
		return
	}

	res, err := h.app.SubmitInventory(ctx, report)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if res.Created {
		c.JSON(http.StatusCreated, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
