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
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/samber/lo"

	"github.com/labinventory/inventory/model"
)

func toGigaBytes(b uint64) float64 {
	return float64(b) / model.GigaByte
}

// lowDiskSpaceNotification returns the alert for a root disk with less
// free space than the effective threshold, or nil.
func lowDiskSpaceNotification(
	deviceID int64,
	summary *model.InfoSummary,
	settings model.EffectiveSettings,
) *model.Notification {
	root := summary.RootDisk()
	if root == nil || root.Free >= settings.MinimumFreeBytes() {
		return nil
	}
	return &model.Notification{
		Kind:     model.NotificationLowDiskSpace,
		DeviceID: deviceID,
		Subject:  fmt.Sprintf("Inventory - low disk space on %s", summary.Hostname),
		Body: fmt.Sprintf(
			"The computer %s is running out of disk space.\n\n"+
				"MAC: %s\n"+
				"IP: %s\n"+
				"Free space: %.2f GB\n"+
				"Total space: %.2f GB\n"+
				"Alert threshold: %d GB\n",
			summary.Hostname,
			summary.MAC,
			summary.IP,
			toGigaBytes(root.Free),
			toGigaBytes(root.Total),
			settings.MinimumDiskSpaceInGigaForAlert,
		),
	}
}

// storageChangeNotification returns the alert for disk usage changes
// larger than threshold, or nil.
func storageChangeNotification(
	deviceID int64,
	summary *model.InfoSummary,
	changes *changeSet,
	threshold uint64,
) *model.Notification {
	if !changes.Changed() {
		return nil
	}
	significant := lo.Filter(changes.DiskDeltas, func(d diskUsageDelta, _ int) bool {
		return d.Delta > threshold
	})
	if len(significant) == 0 {
		return nil
	}
	lines := lo.Map(significant, func(d diskUsageDelta, _ int) string {
		return fmt.Sprintf("  %s changed by %s", d.Path, humanize.IBytes(d.Delta))
	})
	return &model.Notification{
		Kind:     model.NotificationStorageChange,
		DeviceID: deviceID,
		Subject: fmt.Sprintf(
			"Inventory - significant storage change on %s", summary.Hostname),
		Body: fmt.Sprintf(
			"The computer %s had a significant change of its disk usage.\n\n"+
				"MAC: %s\n"+
				"IP: %s\n\n"+
				"%s\n",
			summary.Hostname,
			summary.MAC,
			summary.IP,
			strings.Join(lines, "\n"),
		),
	}
}

// evaluateAlerts runs the alerting policy on an accepted report and
// dispatches the resulting notifications without waiting for them.
func (a *app) evaluateAlerts(
	ctx context.Context,
	deviceID int64,
	summary *model.InfoSummary,
	settings model.EffectiveSettings,
	changes *changeSet,
) {
	notifications := lo.Compact([]*model.Notification{
		lowDiskSpaceNotification(deviceID, summary, settings),
		storageChangeNotification(deviceID, summary, changes, a.UsageDeltaBytes),
	})
	if len(notifications) == 0 {
		return
	}
	a.dispatch(ctx, notifications)
}

// recipients returns the opted-in subscribers and the static recipients.
func (a *app) recipients(ctx context.Context) ([]string, error) {
	emails, err := a.store.ListNotificationRecipients(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(append(emails, a.StaticRecipients...)), nil
}

// dispatch delivers the notifications in the background. Failures are
// logged and never reach the caller.
func (a *app) dispatch(ctx context.Context, notifications []*model.Notification) {
	l := log.FromContext(ctx)
	if a.notifier == nil {
		for _, n := range notifications {
			l.Infof("notifications disabled, skipping %s alert for device %d",
				n.Kind, n.DeviceID)
		}
		return
	}
	ctx = context.WithoutCancel(ctx)
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		for _, n := range notifications {
			l.Warnf("shutting down, dropping %s alert for device %d",
				n.Kind, n.DeviceID)
			notificationsTotal.WithLabelValues(string(n.Kind), "dropped").Inc()
		}
		return
	}
	a.pending.Add(1)
	a.mu.Unlock()
	go func() {
		defer a.pending.Done()
		recipients, err := a.recipients(ctx)
		if err != nil {
			l.Errorf("failed to list notification recipients: %s", err)
			for _, n := range notifications {
				notificationsTotal.WithLabelValues(string(n.Kind), "failed").Inc()
			}
			return
		}
		if len(recipients) == 0 {
			l.Debug("no notification recipients, skipping alerts")
			return
		}
		for _, n := range notifications {
			n.Recipients = recipients
			err := a.notifier.Notify(ctx, n)
			if err != nil {
				l.Errorf("failed to deliver %s notification for device %d: %s",
					n.Kind, n.DeviceID, err)
				notificationsTotal.WithLabelValues(string(n.Kind), "failed").Inc()
				continue
			}
			notificationsTotal.WithLabelValues(string(n.Kind), "sent").Inc()
		}
	}()
}
