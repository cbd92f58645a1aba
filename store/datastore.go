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

package store

import (
	"context"
	"errors"

	"github.com/labinventory/inventory/model"
)

// DataStore interface for DataStore services
//
// Getters return (nil, nil) when the record does not exist; updates and
// deletes addressed by id return ErrNotFound.
//
//nolint:lll - skip line length check for interface declaration.
//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error

	GetDevice(ctx context.Context, id int64) (*model.Device, error)
	GetDeviceByToken(ctx context.Context, token string) (*model.Device, error)
	GetDeviceByMAC(ctx context.Context, mac string) (*model.Device, error)
	InsertDevice(ctx context.Context, device *model.Device) error
	UpdateDeviceInventory(ctx context.Context, update *model.DeviceInventoryUpdate, auditLog *model.AuditLogEntry) error
	UpdateDeviceStatus(ctx context.Context, id int64, status model.DeviceStatus) error
	SetDevicesGroup(ctx context.Context, ids []int64, groupID *int64) error
	DeleteDevice(ctx context.Context, id int64) error
	ListDevices(ctx context.Context, filter model.DeviceFilter) ([]model.Device, int, error)
	CountDevices(ctx context.Context, filter model.DeviceFilter) (*model.DeviceCounters, error)
	GetAuditLogs(ctx context.Context, deviceID int64, limit int) ([]model.AuditLogEntry, error)

	GetGroup(ctx context.Context, id int64) (*model.Group, error)
	GetGroupByCode(ctx context.Context, code string) (*model.Group, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
	InsertGroup(ctx context.Context, group *model.Group) error
	UpdateGroup(ctx context.Context, group *model.Group) error
	DeleteGroup(ctx context.Context, id int64) error

	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error

	GetSubscriber(ctx context.Context, id string) (*model.Subscriber, error)
	UpsertSubscriber(ctx context.Context, subscriber *model.Subscriber) error
	ListNotificationRecipients(ctx context.Context) ([]string, error)

	Close() error
}

var (
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateDevice is returned when a device insert violates the
	// uniqueness of the MAC address or of the token.
	ErrDuplicateDevice = errors.New("store: device with the same mac or token exists")
	// ErrDuplicateGroup is returned when a group insert or update violates
	// the uniqueness of the group code.
	ErrDuplicateGroup = errors.New("store: group with the same code exists")
)
