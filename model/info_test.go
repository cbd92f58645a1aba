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

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoJSON(t *testing.T) {
	raw := `{"z":1,"a":{"b":[1,2.50]},"hostname":"pc"}`
	var dev Device
	err := json.Unmarshal([]byte(`{"id":1,"info":`+raw+`}`), &dev)
	require.NoError(t, err)
	assert.Equal(t, raw, string(dev.Info))

	b, err := json.Marshal(struct {
		Info Info `json:"info"`
	}{Info: dev.Info})
	require.NoError(t, err)
	assert.Equal(t, `{"info":`+raw+`}`, string(b))

	b, err = json.Marshal(struct {
		Info Info `json:"info"`
	}{})
	require.NoError(t, err)
	assert.Equal(t, `{"info":null}`, string(b))
}

func TestInfoDocument(t *testing.T) {
	doc, err := Info(`{"uptime":12345678901234567}`).Document()
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567"), doc["uptime"])

	doc, err = Info(" null ").Document()
	assert.NoError(t, err)
	assert.Nil(t, doc)

	_, err = Info(`[1]`).Document()
	assert.ErrorIs(t, err, ErrInfoNotObject)
}

func TestInfoSummary(t *testing.T) {
	info := Info(`{
		"hostname": "pc-1",
		"mac": "aa:bb",
		"ip": "10.0.0.2",
		"laboratoryCode": "LAB1",
		"cpu": {"model": "x86"},
		"disks": [
			{"device": "/dev/sdb1", "mountpoint": "/home", "total": 10, "used": 5, "free": 5},
			{"device": "/dev/sda1", "mountpoint": "/", "type": "ext4",
			 "total": 107374182400, "used": 102005473280, "free": 5368709120}
		]
	}`)
	summary, err := info.Summary()
	require.NoError(t, err)
	assert.Equal(t, "pc-1", summary.Hostname)
	assert.Equal(t, "aa:bb", summary.MAC)
	assert.Equal(t, "10.0.0.2", summary.IP)
	assert.Equal(t, "LAB1", summary.LaboratoryCode)
	require.Len(t, summary.Disks, 2)

	root := summary.RootDisk()
	require.NotNil(t, root)
	assert.Equal(t, Disk{
		Device:     "/dev/sda1",
		Mountpoint: "/",
		Type:       "ext4",
		Total:      100 * GigaByte,
		Used:       95 * GigaByte,
		Free:       5 * GigaByte,
	}, *root)

	summary, err = Info(`{"disks":[{"mountpoint":"/data","free":1}]}`).Summary()
	require.NoError(t, err)
	assert.Nil(t, summary.RootDisk())

	summary, err = Info(nil).Summary()
	require.NoError(t, err)
	assert.Nil(t, summary.RootDisk())

	_, err = Info(`{"disks":"none"}`).Summary()
	assert.Error(t, err)
}

func TestInfoSummaryLabels(t *testing.T) {
	testCases := []struct {
		Name string
		Info Info

		IP       string
		Hostname string
	}{
		{
			Name:     "address list",
			Info:     Info(`{"hostname":"pc-1","ip":["10.0.0.1","192.168.0.2"]}`),
			IP:       "10.0.0.1, 192.168.0.2",
			Hostname: "pc-1",
		},
		{
			Name:     "numeric hostname",
			Info:     Info(`{"hostname":42,"ip":null}`),
			Hostname: "42",
		},
		{
			Name:     "object address",
			Info:     Info(`{"hostname":"pc-1","ip":{"eth0":"10.0.0.1"}}`),
			IP:       "map[eth0:10.0.0.1]",
			Hostname: "pc-1",
		},
	}

	disks := `"disks":[{"mountpoint":"/","total":100,"used":95,"free":5}]`
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			info := append(Info(nil), tc.Info[:len(tc.Info)-1]...)
			info = append(info, []byte(","+disks+"}")...)

			summary, err := info.Summary()
			require.NoError(t, err)
			assert.Equal(t, tc.IP, summary.IP)
			assert.Equal(t, tc.Hostname, summary.Hostname)
			if assert.NotNil(t, summary.RootDisk()) {
				assert.Equal(t, uint64(5), summary.RootDisk().Free)
			}
		})
	}
}
