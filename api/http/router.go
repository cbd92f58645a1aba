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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mendersoftware/go-lib-micro/accesslog"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/requestid"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/client/useradm"
)

// API URL used by the HTTP router
const (
	APIURLDevices    = "/api/devices/v1/inventory"
	APIURLInternal   = "/api/internal/v1/inventory"
	APIURLManagement = "/api/management/v1/inventory"

	APIURLDevicesReports = APIURLDevices + "/reports"
	APIURLLegacyReports  = "/inventory"

	APIURLInternalAlive  = APIURLInternal + "/alive"
	APIURLInternalHealth = APIURLInternal + "/health"

	APIURLMetrics = "/metrics"

	APIURLManagementDevices       = APIURLManagement + "/devices"
	APIURLManagementDevicesCount  = APIURLManagement + "/devices/count"
	APIURLManagementDevicesLink   = APIURLManagement + "/devices/link"
	APIURLManagementDevice        = APIURLManagement + "/devices/:id"
	APIURLManagementDeviceChanges = APIURLManagement + "/devices/:id/changes"
	APIURLManagementDeviceHistory = APIURLManagement + "/devices/:id/history"
	APIURLManagementDeviceStatus  = APIURLManagement + "/devices/:id/status"
	APIURLManagementDeviceGroup   = APIURLManagement + "/devices/:id/group"

	APIURLManagementGroups = APIURLManagement + "/groups"
	APIURLManagementGroup  = APIURLManagement + "/groups/:id"

	APIURLManagementSettings             = APIURLManagement + "/settings"
	APIURLManagementNotificationSettings = APIURLManagement + "/users/me/notification-settings"
)

// Config holds the optional collaborators of the router
type Config struct {
	// Useradm, when set, verifies the tokens of management requests.
	Useradm useradm.ClientInterface
	// CORSOrigins restricts the allowed origins; empty allows all.
	CORSOrigins []string
}

// NewRouter returns the gin router
func NewRouter(
	app app.App,
	config ...Config,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	var conf Config
	for _, c := range config {
		if c.Useradm != nil {
			conf.Useradm = c.Useradm
		}
		if c.CORSOrigins != nil {
			conf.CORSOrigins = c.CORSOrigins
		}
	}

	router := gin.New()
	router.Use(accesslog.Middleware())
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(corsMiddleware(conf.CORSOrigins))
	router.Use(identity.Middleware(
		identity.NewMiddlewareOptions().
			SetPathRegex(`^/api/management/v[0-9]/`),
	))

	status := NewStatusController(app)
	router.GET(APIURLInternalAlive, status.Alive)
	router.GET(APIURLInternalHealth, status.Health)
	router.GET(APIURLMetrics, gin.WrapH(promhttp.Handler()))

	inventory := NewInventoryController(app)
	router.POST(APIURLDevicesReports, inventory.SubmitReport)
	router.POST(APIURLLegacyReports, inventory.SubmitReport)

	management := router.Group("/", AdminMiddleware(conf.Useradm))

	devices := NewDevicesController(app)
	management.GET(APIURLManagementDevices, devices.List)
	management.GET(APIURLManagementDevicesCount, devices.Count)
	management.POST(APIURLManagementDevicesLink, devices.Link)
	management.GET(APIURLManagementDevice, devices.Get)
	management.DELETE(APIURLManagementDevice, devices.Delete)
	management.GET(APIURLManagementDeviceChanges, devices.Changes)
	management.GET(APIURLManagementDeviceHistory, devices.History)
	management.PUT(APIURLManagementDeviceStatus, devices.UpdateStatus)
	management.DELETE(APIURLManagementDeviceGroup, devices.Unlink)

	groups := NewGroupsController(app)
	management.GET(APIURLManagementGroups, groups.List)
	management.POST(APIURLManagementGroups, groups.Create)
	management.GET(APIURLManagementGroup, groups.Get)
	management.PUT(APIURLManagementGroup, groups.Update)
	management.DELETE(APIURLManagementGroup, groups.Delete)

	settings := NewSettingsController(app)
	management.GET(APIURLManagementSettings, settings.Get)
	management.PUT(APIURLManagementSettings, settings.Save)
	management.GET(APIURLManagementNotificationSettings, settings.GetNotificationSettings)
	management.PUT(APIURLManagementNotificationSettings, settings.SaveNotificationSettings)

	router.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound, errNotFound)
	})

	return router, nil
}

const corsMaxAge = time.Hour * 12
