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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labinventory/inventory/model"
)

func testSummary(total, free uint64) *model.InfoSummary {
	return &model.InfoSummary{
		Hostname: "pc-1",
		MAC:      "aa:bb",
		IP:       "10.0.0.1",
		Disks: []model.Disk{{
			Device:     "/dev/sdb1",
			Mountpoint: "/home",
			Total:      1000 * model.GigaByte,
			Free:       1,
		}, {
			Device:     "/dev/sda1",
			Mountpoint: model.RootMountpoint,
			Total:      total,
			Used:       total - free,
			Free:       free,
		}},
	}
}

func TestLowDiskSpaceNotification(t *testing.T) {
	testCases := []struct {
		Name      string
		Summary   *model.InfoSummary
		Threshold int64

		Notification bool
		Contains     []string
	}{
		{
			Name:         "below threshold",
			Summary:      testSummary(100*model.GigaByte, 5*model.GigaByte),
			Threshold:    20,
			Notification: true,
			Contains: []string{
				"pc-1", "MAC: aa:bb", "IP: 10.0.0.1",
				"Free space: 5.00 GB", "Total space: 100.00 GB",
				"Alert threshold: 20 GB",
			},
		},
		{
			Name:      "above threshold",
			Summary:   testSummary(100*model.GigaByte, 25*model.GigaByte),
			Threshold: 20,
		},
		{
			Name:      "exactly at threshold",
			Summary:   testSummary(100*model.GigaByte, 20*model.GigaByte),
			Threshold: 20,
		},
		{
			Name:      "alerts disabled",
			Summary:   testSummary(100*model.GigaByte, 0),
			Threshold: 0,
		},
		{
			Name: "no root disk",
			Summary: &model.InfoSummary{
				Hostname: "pc-1",
				Disks:    []model.Disk{{Mountpoint: "/data", Total: 100}},
			},
			Threshold: 20,
		},
		{
			Name:      "no summary",
			Threshold: 20,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			n := lowDiskSpaceNotification(7, tc.Summary, model.EffectiveSettings{
				MinimumDiskSpaceInGigaForAlert: tc.Threshold,
			})
			if !tc.Notification {
				assert.Nil(t, n)
				return
			}
			require.NotNil(t, n)
			assert.Equal(t, model.NotificationLowDiskSpace, n.Kind)
			assert.Equal(t, int64(7), n.DeviceID)
			assert.Contains(t, n.Subject, "pc-1")
			for _, s := range tc.Contains {
				assert.Contains(t, n.Body, s)
			}
		})
	}
}

func TestStorageChangeNotification(t *testing.T) {
	const threshold = 2000000000
	summary := testSummary(500*model.GigaByte, 100*model.GigaByte)

	testCases := []struct {
		Name    string
		Changes *changeSet

		Notification bool
		Contains     []string
		NotContains  []string
	}{
		{
			Name: "no changes",
		},
		{
			Name:    "unchanged document",
			Changes: &changeSet{},
		},
		{
			Name: "small delta",
			Changes: &changeSet{
				Changes:    []model.Change{{Path: "disks[0].used"}},
				DiskDeltas: []diskUsageDelta{{Path: "disks[0].used", Delta: threshold}},
			},
		},
		{
			Name: "large delta",
			Changes: &changeSet{
				Changes: []model.Change{
					{Path: "disks[0].used"},
					{Path: "disks[1].used"},
				},
				DiskDeltas: []diskUsageDelta{
					{Path: "disks[0].used", Delta: 3 * model.GigaByte},
					{Path: "disks[1].used", Delta: 1024},
				},
			},
			Notification: true,
			Contains:     []string{"pc-1", "disks[0].used changed by 3.0 GiB"},
			NotContains:  []string{"disks[1].used"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			n := storageChangeNotification(7, summary, tc.Changes, threshold)
			if !tc.Notification {
				assert.Nil(t, n)
				return
			}
			require.NotNil(t, n)
			assert.Equal(t, model.NotificationStorageChange, n.Kind)
			for _, s := range tc.Contains {
				assert.Contains(t, n.Body, s)
			}
			for _, s := range tc.NotContains {
				assert.NotContains(t, n.Body, s)
			}
		})
	}
}
