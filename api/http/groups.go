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

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/model"
)

// GroupsController contains the group management end-points
type GroupsController struct {
	app app.App
}

// NewGroupsController returns a new GroupsController
func NewGroupsController(app app.App) *GroupsController {
	return &GroupsController{app: app}
}

type groupRequest struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Settings    *model.Settings `json:"settings"`
}

func bindGroup(c *gin.Context) (*model.Group, error) {
	var body groupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errBadRequest(errors.Wrap(err, "malformed request body"))
	}
	group := &model.Group{
		Code:        body.Code,
		Description: body.Description,
		Settings:    body.Settings,
	}
	if err := group.Validate(); err != nil {
		return nil, errBadRequest(err)
	}
	return group, nil
}

// List responds to GET /groups
func (h GroupsController) List(c *gin.Context) {
	groups, err := h.app.ListGroups(c.Request.Context())
	if err != nil {
		renderAppError(c, err)
		return
	}
	if groups == nil {
		groups = []model.Group{}
	}
	c.JSON(http.StatusOK, groups)
}

// Create responds to POST /groups
func (h GroupsController) Create(c *gin.Context) {
	group, err := bindGroup(c)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if err := h.app.CreateGroup(c.Request.Context(), group); err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// Get responds to GET /groups/:id
func (h GroupsController) Get(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	group, err := h.app.GetGroup(c.Request.Context(), id)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// Update responds to PUT /groups/:id
func (h GroupsController) Update(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	group, err := bindGroup(c)
	if err != nil {
		renderAppError(c, err)
		return
	}
	group.ID = id
	if err := h.app.UpdateGroup(c.Request.Context(), group); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete responds to DELETE /groups/:id
func (h GroupsController) Delete(c *gin.Context) {
	id, err := paramInt64(c, paramID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	if err := h.app.DeleteGroup(c.Request.Context(), id); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
