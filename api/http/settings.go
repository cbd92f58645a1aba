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
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/model"
)

// SettingsController contains the global and per user settings end-points
type SettingsController struct {
	app app.App
}

// NewSettingsController returns a new SettingsController
func NewSettingsController(app app.App) *SettingsController {
	return &SettingsController{app: app}
}

// Get responds to GET /settings
func (h SettingsController) Get(c *gin.Context) {
	settings, err := h.app.GetSettings(c.Request.Context())
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Save responds to PUT /settings
func (h SettingsController) Save(c *gin.Context) {
	var settings model.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		renderAppError(c, errBadRequest(errors.Wrap(err, "malformed request body")))
		return
	}
	if err := settings.Validate(); err != nil {
		renderAppError(c, errBadRequest(err))
		return
	}
	if err := h.app.SaveSettings(c.Request.Context(), &settings); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type notificationSettings struct {
	Email    string         `json:"email"`
	Settings model.Settings `json:"settings"`
}

// GetNotificationSettings responds to GET /users/me/notification-settings
func (h SettingsController) GetNotificationSettings(c *gin.Context) {
	ctx := c.Request.Context()
	idata := identity.FromContext(ctx)

	subscriber, err := h.app.GetSubscriber(ctx, idata.Subject)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, notificationSettings{
		Email:    subscriber.Email,
		Settings: subscriber.Settings,
	})
}

// SaveNotificationSettings responds to PUT /users/me/notification-settings
func (h SettingsController) SaveNotificationSettings(c *gin.Context) {
	ctx := c.Request.Context()
	idata := identity.FromContext(ctx)

	var body notificationSettings
	if err := c.ShouldBindJSON(&body); err != nil {
		renderAppError(c, errBadRequest(errors.Wrap(err, "malformed request body")))
		return
	}
	subscriber := &model.Subscriber{
		ID:       idata.Subject,
		Email:    body.Email,
		Settings: body.Settings,
	}
	if err := subscriber.Validate(); err != nil {
		renderAppError(c, errBadRequest(err))
		return
	}
	if err := h.app.SaveSubscriber(ctx, subscriber); err != nil {
		renderAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
