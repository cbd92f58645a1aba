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

package app

import (
	"context"
	"sync"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
	"github.com/labinventory/inventory/utils"
)

// App errors
var (
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrIdentityMismatch     = errors.New("token belongs to a device with a different mac address")
	ErrDuplicateHardware    = errors.New("mac address already registered")
	ErrDeviceNotFound       = errors.New("device not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupExists          = errors.New("group with the same code already exists")
)

const (
	defaultUsageDeltaBytes = 2000000000
	defaultInactiveAfter   = 7 * 24 * time.Hour
	defaultHistoryLimit    = 20
)

// App interface describes app objects
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type App interface {
	HealthCheck(ctx context.Context) error
	SubmitInventory(ctx context.Context, report *model.Report) (*model.InventoryResult, error)

	GetDevice(ctx context.Context, id int64) (*model.Device, error)
	ListDevices(ctx context.Context, filter model.DeviceFilter) ([]model.Device, int, error)
	CountDevices(ctx context.Context) (*model.DeviceCounters, error)
	GetDeviceChanges(ctx context.Context, id int64) (*model.DeviceChanges, error)
	GetDeviceHistory(ctx context.Context, id int64, limit int) ([]model.AuditLogEntry, error)
	UpdateDeviceStatus(ctx context.Context, id int64, status model.DeviceStatus) error
	DeleteDevice(ctx context.Context, id int64) error
	LinkDevices(ctx context.Context, code string, ids []int64) error
	UnlinkDevice(ctx context.Context, id int64) error

	ListGroups(ctx context.Context) ([]model.Group, error)
	GetGroup(ctx context.Context, id int64) (*model.Group, error)
	CreateGroup(ctx context.Context, group *model.Group) error
	UpdateGroup(ctx context.Context, group *model.Group) error
	DeleteGroup(ctx context.Context, id int64) error

	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error

	GetSubscriber(ctx context.Context, id string) (*model.Subscriber, error)
	SaveSubscriber(ctx context.Context, subscriber *model.Subscriber) error

	Shutdown(timeout time.Duration)
}

// Notifier delivers notifications to their recipients
//
//go:generate ../utils/mockgen.sh
type Notifier interface {
	Notify(ctx context.Context, notification *model.Notification) error
}

// Config holds the tunables of the app
type Config struct {
	// StaticRecipients are notified on top of the opted-in subscribers.
	StaticRecipients []string
	// SettingsCacheTTL bounds how long a change of the global settings
	// may go unnoticed; zero reads the settings on every report.
	SettingsCacheTTL time.Duration
	// UsageDeltaBytes is the disk usage change which raises a storage
	// change notification.
	UsageDeltaBytes uint64
	// InactiveAfter is how long a device may go without reporting before
	// it counts as inactive.
	InactiveAfter time.Duration
	Clock         utils.Clock
}

// app is an app object
type app struct {
	store    store.DataStore
	notifier Notifier
	settings *settingsLoader

	// pending tracks the notification dispatches still running; no
	// dispatch starts once closed is set
	pending sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	Config
}

// New initialize a new inventory App. notifier may be nil, in which case
// alerts are only logged.
func New(ds store.DataStore, notifier Notifier, config ...Config) App {
	conf := Config{}
	for _, cfgIn := range config {
		if cfgIn.StaticRecipients != nil {
			conf.StaticRecipients = cfgIn.StaticRecipients
		}
		if cfgIn.SettingsCacheTTL > 0 {
			conf.SettingsCacheTTL = cfgIn.SettingsCacheTTL
		}
		if cfgIn.UsageDeltaBytes > 0 {
			conf.UsageDeltaBytes = cfgIn.UsageDeltaBytes
		}
		if cfgIn.InactiveAfter > 0 {
			conf.InactiveAfter = cfgIn.InactiveAfter
		}
		if cfgIn.Clock != nil {
			conf.Clock = cfgIn.Clock
		}
	}
	if conf.UsageDeltaBytes == 0 {
		conf.UsageDeltaBytes = defaultUsageDeltaBytes
	}
	if conf.InactiveAfter == 0 {
		conf.InactiveAfter = defaultInactiveAfter
	}
	if conf.Clock == nil {
		conf.Clock = utils.RealClock{}
	}
	return &app{
		store:    ds,
		notifier: notifier,
		settings: newSettingsLoader(ds, conf.SettingsCacheTTL),
		Config:   conf,
	}
}

// HealthCheck performs a health check and returns an error if it fails
func (a *app) HealthCheck(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// Shutdown waits up to timeout for the pending notifications
func (a *app) Shutdown(timeout time.Duration) {
	defer a.settings.Stop()
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	done := make(chan struct{})
	go func() {
		a.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.NewEmpty().Warn("shutdown timeout: dropping pending notifications")
	}
}
