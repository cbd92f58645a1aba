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

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
)

// SubmitInventory reconciles a device report with the stored inventory:
// it registers new devices, updates known ones and records an audit log
// entry whenever the reported info changed.
func (a *app) SubmitInventory(
	ctx context.Context,
	report *model.Report,
) (*model.InventoryResult, error) {
	res, err := a.submitInventory(ctx, report)
	switch {
	case err == nil && res.Created:
		reportsTotal.WithLabelValues(outcomeCreated).Inc()
	case err == nil:
		reportsTotal.WithLabelValues(outcomeUpdated).Inc()
	case errors.Is(err, ErrRegistrationDisabled):
		reportsTotal.WithLabelValues(outcomeRegistrationDisabled).Inc()
	case errors.Is(err, ErrIdentityMismatch):
		reportsTotal.WithLabelValues(outcomeIdentityConflict).Inc()
	case errors.Is(err, ErrDuplicateHardware):
		reportsTotal.WithLabelValues(outcomeDuplicateHardware).Inc()
	default:
		reportsTotal.WithLabelValues(outcomeError).Inc()
	}
	return res, err
}

func (a *app) submitInventory(
	ctx context.Context,
	report *model.Report,
) (*model.InventoryResult, error) {
	l := log.FromContext(ctx)

	global, err := a.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !model.MergeSettings(global, nil).EnableRegistration {
		return nil, ErrRegistrationDisabled
	}

	device, err := a.resolveIdentity(ctx, report)
	if err != nil {
		return nil, err
	}

	group, err := a.resolveGroup(ctx, report.LaboratoryCode)
	if err != nil {
		return nil, err
	}

	summary, err := report.Info.Summary()
	if err != nil {
		l.Warnf("unexpected info layout reported by %s, skipping alerts: %s",
			report.MAC, err)
		summary = nil
	}

	if device != nil {
		return a.updateDevice(ctx, device, group, global, report, summary)
	}
	return a.registerDevice(ctx, group, global, report, summary)
}

func groupSettings(group *model.Group) *model.Settings {
	if group == nil {
		return nil
	}
	return group.Settings
}

func rootDiskFree(summary *model.InfoSummary) *int64 {
	root := summary.RootDisk()
	if root == nil {
		return nil
	}
	free := int64(root.Free)
	return &free
}

func (a *app) updateDevice(
	ctx context.Context,
	device *model.Device,
	group *model.Group,
	global *model.Settings,
	report *model.Report,
	summary *model.InfoSummary,
) (*model.InventoryResult, error) {
	update := &model.DeviceInventoryUpdate{
		ID:           device.ID,
		Name:         report.Hostname,
		Info:         report.Info,
		RootDiskFree: rootDiskFree(summary),
		UpdatedTs:    a.Clock.Now(),
	}
	if group != nil {
		update.GroupID = &group.ID
	} else {
		group = device.Group
	}
	settings := model.MergeSettings(global, groupSettings(group))

	changes, err := detectChanges(device.Info, report.Info)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compare info documents")
	}
	var auditLog *model.AuditLogEntry
	if changes.Changed() {
		auditLog = &model.AuditLogEntry{
			DeviceID:  device.ID,
			OldInfo:   device.Info,
			CreatedTs: update.UpdatedTs,
		}
	}

	err = a.store.UpdateDeviceInventory(ctx, update, auditLog)
	if errors.Is(err, store.ErrNotFound) {
		// deleted since it was resolved
		return nil, ErrDeviceNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to update device")
	}
	if auditLog != nil {
		auditLogsWritten.Inc()
	}

	if summary != nil {
		a.evaluateAlerts(ctx, device.ID, summary, settings, changes)
	}
	return &model.InventoryResult{
		ID:  device.ID,
		MAC: device.MAC,
	}, nil
}

func (a *app) registerDevice(
	ctx context.Context,
	group *model.Group,
	global *model.Settings,
	report *model.Report,
	summary *model.InfoSummary,
) (*model.InventoryResult, error) {
	settings := model.MergeSettings(global, groupSettings(group))

	token := report.Token
	if token == "" {
		token = uuid.NewString()
	}
	status := model.DeviceStatusUnverified
	if settings.AutoApprove {
		status = model.DeviceStatusVerified
	}
	now := a.Clock.Now()
	device := &model.Device{
		MAC:          report.MAC,
		Token:        token,
		Name:         report.Hostname,
		Status:       status,
		Info:         report.Info,
		RootDiskFree: rootDiskFree(summary),
		CreatedTs:    now,
		UpdatedTs:    now,
	}
	if group != nil {
		device.GroupID = &group.ID
	}

	err := a.store.InsertDevice(ctx, device)
	if errors.Is(err, store.ErrDuplicateDevice) {
		// a concurrent report registered the same mac or token
		return nil, ErrDuplicateHardware
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}
	log.FromContext(ctx).Infof("registered device %d (%s) as %s",
		device.ID, device.MAC, device.Status)

	if summary != nil {
		a.evaluateAlerts(ctx, device.ID, summary, settings, nil)
	}
	return &model.InventoryResult{
		ID:      device.ID,
		MAC:     device.MAC,
		Token:   token,
		Created: true,
	}, nil
}
