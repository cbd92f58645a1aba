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

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
)

func notFound(err, notFoundErr error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundErr
	}
	return err
}

// GetDevice returns a device with its group and its latest audit log entry
func (a *app) GetDevice(ctx context.Context, id int64) (*model.Device, error) {
	device, err := a.store.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}
	logs, err := a.store.GetAuditLogs(ctx, id, 1)
	if err != nil {
		return nil, err
	}
	if len(logs) > 0 {
		device.LastAuditLog = &logs[0]
	}
	return device, nil
}

// ListDevices returns a page of devices and the number of matches
func (a *app) ListDevices(
	ctx context.Context,
	filter model.DeviceFilter,
) ([]model.Device, int, error) {
	if filter.Inactive {
		before := a.Clock.Now().Add(-a.InactiveAfter)
		filter.InactiveBefore = &before
	}
	if filter.LowStorage {
		global, err := a.settings.Load(ctx)
		if err != nil {
			return nil, -1, err
		}
		minimum := int64(model.MergeSettings(global, nil).MinimumFreeBytes())
		filter.FreeBelow = &minimum
	}
	return a.store.ListDevices(ctx, filter)
}

// CountDevices returns the dashboard counters
func (a *app) CountDevices(ctx context.Context) (*model.DeviceCounters, error) {
	global, err := a.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	before := a.Clock.Now().Add(-a.InactiveAfter)
	minimum := int64(model.MergeSettings(global, nil).MinimumFreeBytes())
	return a.store.CountDevices(ctx, model.DeviceFilter{
		InactiveBefore: &before,
		FreeBelow:      &minimum,
	})
}

// GetDeviceChanges compares the info of a device with the one recorded
// by its latest audit log entry.
func (a *app) GetDeviceChanges(ctx context.Context, id int64) (*model.DeviceChanges, error) {
	device, err := a.store.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}
	result := &model.DeviceChanges{
		DeviceID: id,
		Changes:  []model.Change{},
	}
	logs, err := a.store.GetAuditLogs(ctx, id, 1)
	if err != nil {
		return nil, err
	} else if len(logs) == 0 {
		return result, nil
	}
	result.Since = &logs[0].CreatedTs
	changes, err := detectChanges(logs[0].OldInfo, device.Info)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compare info documents")
	}
	if changes.Changed() {
		result.Changes = changes.Changes
	}
	return result, nil
}

// GetDeviceHistory returns the audit log of a device, newest first
func (a *app) GetDeviceHistory(
	ctx context.Context,
	id int64,
	limit int,
) ([]model.AuditLogEntry, error) {
	device, err := a.store.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return a.store.GetAuditLogs(ctx, id, limit)
}

// UpdateDeviceStatus sets the approval status of a device. It neither
// compares info documents nor raises alerts.
func (a *app) UpdateDeviceStatus(
	ctx context.Context,
	id int64,
	status model.DeviceStatus,
) error {
	err := a.store.UpdateDeviceStatus(ctx, id, status)
	return notFound(err, ErrDeviceNotFound)
}

// DeleteDevice deletes a device and its audit log
func (a *app) DeleteDevice(ctx context.Context, id int64) error {
	err := a.store.DeleteDevice(ctx, id)
	return notFound(err, ErrDeviceNotFound)
}

// LinkDevices moves the devices to the group with the given code
func (a *app) LinkDevices(ctx context.Context, code string, ids []int64) error {
	group, err := a.store.GetGroupByCode(ctx, code)
	if err != nil {
		return err
	} else if group == nil {
		return ErrGroupNotFound
	}
	err = a.store.SetDevicesGroup(ctx, lo.Uniq(ids), &group.ID)
	return notFound(err, ErrDeviceNotFound)
}

// UnlinkDevice removes a device from its group
func (a *app) UnlinkDevice(ctx context.Context, id int64) error {
	err := a.store.SetDevicesGroup(ctx, []int64{id}, nil)
	return notFound(err, ErrDeviceNotFound)
}
