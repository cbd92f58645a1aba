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
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/model"
)

const (
	hdrTotalCount = "X-Total-Count"

	paramID = "id"

	qParamQuery        = "q"
	qParamUpdatedAfter = "updated_after"
	qParamInactive     = "inactive"
	qParamLowStorage   = "low_storage"
	qParamStatus       = "status"
	qParamGroupID      = "group_id"
	qParamPage         = "page"
	qParamPerPage      = "per_page"
	qParamLimit        = "limit"

	defaultPerPage = 20
	maxPerPage     = 500
)

// DevicesController contains the device management end-points
type DevicesController struct {
	app app.App
}

// NewDevicesController returns a new DevicesController
func NewDevicesController(app app.App) *DevicesController {
	return &DevicesController{app: app}
}

func paramInt64(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errBadRequest(errors.Errorf("%s: must be an integer", name))
	}
	return n, nil
}

func queryBool(c *gin.Context, name string) (bool, error) {
	v := c.Query(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errBadRequest(errors.Errorf("%s: must be a boolean", name))
	}
	return b, nil
}

func parseDeviceFilter(c *gin.Context) (model.DeviceFilter, error) {
	var (
		filter = model.DeviceFilter{
			Query:  c.Query(qParamQuery),
			Status: model.DeviceStatus(c.Query(qParamStatus)),
		}
		err error
	)
	if v := c.Query(qParamUpdatedAfter); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errBadRequest(errors.Errorf(
				"%s: must be a RFC3339 timestamp", qParamUpdatedAfter))
		}
		filter.UpdatedAfter = &t
	}
	if filter.Inactive, err = queryBool(c, qParamInactive); err != nil {
		return filter, err
	}
	if filter.LowStorage, err = queryBool(c, qParamLowStorage); err != nil {
		return filter, err
	}
	if v := c.Query(qParamGroupID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errBadRequest(errors.Errorf(
				"%s: must be an integer", qParamGroupID))
		}
		filter.GroupID = &id
	}
	page, err := queryInt(c, qParamPage, 1)
	if err != nil {
		return filter, err
	}
	perPage, err := queryInt(c, qParamPerPage, defaultPerPage)
	if err != nil {
		return filter, err
	}
	err = validation.Errors{
		qParamPage:    validation.Validate(page, validation.Min(1)),
		qParamPerPage: validation.Validate(perPage, validation.Min(1), validation.Max(maxPerPage)),
	}.Filter()
	if err != nil {
		return filter, errBadRequest(err)
	}
	filter.Skip = (page - 1) * perPage
	filter.Limit = perPage
	if err := filter.Validate(); err != nil {
		return filter, errBadRequest(err)
	}
	return filter, nil
}

// List responds to GET /devices
func (h DevicesController) List(c *gin.Context) {
	filter, err := parseDeviceFilter(c)
	if err != nil {
		renderAppError(c, err)
		return
	}
	devices, total, err := h.app.ListDevices(c.Request.Context(), filter)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if devices == nil {
		devices = []model.Device{}
	}
	c.Header(hdrTotalCount, strconv.Itoa(total))
	c.JSON(http.StatusOK, devices)
}

// Count responds to GET /devices/count
func (h DevicesController) Count(c *gin.Context) {
	counters, err := h.app.CountDevices(c.Request.Context())
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, counters)
}

// Get responds to GET /devices/:id
func (h DevicesController) Get(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	device, err := h.app.GetDevice(c.Request.Context(), id)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// Delete responds to DELETE /devices/:id
func (h DevicesController) Delete(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if err := h.app.DeleteDevice(c.Request.Context(), id); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Changes responds to GET /devices/:id/changes
func (h DevicesController) Changes(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	changes, err := h.app.GetDeviceChanges(c.Request.Context(), id)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

// History responds to GET /devices/:id/history
func (h DevicesController) History(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	limit, err := queryInt(c, qParamLimit, 0)
	if err == nil {
		err = validation.Validate(limit, validation.Min(0), validation.Max(maxPerPage))
		if err != nil {
			err = errBadRequest(errors.Wrap(err, qParamLimit))
		}
	}
	if err != nil {
		renderAppError(c, err)
		return
	}
	logs, err := h.app.GetDeviceHistory(c.Request.Context(), id, limit)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if logs == nil {
		logs = []model.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

type statusUpdate struct {
	Status model.DeviceStatus `json:"status"`
}

// UpdateStatus responds to PUT /devices/:id/status
func (h DevicesController) UpdateStatus(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	var body statusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		renderAppError(c, errBadRequest(errors.Wrap(err, "malformed request body")))
		return
	}
	if err := body.Status.Validate(); err != nil {
		renderAppError(c, errBadRequest(errors.Wrap(err, "status")))
		return
	}
	err = h.app.UpdateDeviceStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type linkRequest struct {
	Code      string  `json:"code"`
	DeviceIDs []int64 `json:"device_ids"`
}

func (r linkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.DeviceIDs, validation.Required),
	)
}

// Link responds to POST /devices/link
func (h DevicesController) Link(c *gin.Context) {
	var body linkRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		renderAppError(c, errBadRequest(errors.Wrap(err, "malformed request body")))
		return
	}
	if err := body.Validate(); err != nil {
		renderAppError(c, errBadRequest(err))
		return
	}
	err := h.app.LinkDevices(c.Request.Context(), body.Code, body.DeviceIDs)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unlink responds to DELETE /devices/:id/group
func (h DevicesController) Unlink(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if err := h.app.UnlinkDevice(c.Request.Context(), id); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
