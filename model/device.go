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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DeviceStatus is the approval state of a device.
type DeviceStatus string

// Values for the device status attribute
const (
	DeviceStatusVerified   DeviceStatus = "verified"
	DeviceStatusUnverified DeviceStatus = "unverified"
	DeviceStatusRejected   DeviceStatus = "rejected"
)

func (s DeviceStatus) Validate() error {
	return validation.Validate(string(s),
		validation.Required,
		validation.In(
			string(DeviceStatusVerified),
			string(DeviceStatusUnverified),
			string(DeviceStatusRejected),
		),
	)
}

// Device represents a monitored computer and its latest accepted report
type Device struct {
	ID        int64        `json:"id" bson:"_id"`
	MAC       string       `json:"mac" bson:"mac"`
	Token     string       `json:"-" bson:"token"`
	Name      string       `json:"name" bson:"name"`
	Status    DeviceStatus `json:"status" bson:"status"`
	Info      Info         `json:"info,omitempty" bson:"info,omitempty"`
	GroupID   *int64       `json:"group_id,omitempty" bson:"group_id,omitempty"`
	Group     *Group       `json:"group,omitempty" bson:"group,omitempty"`
	CreatedTs time.Time    `json:"created_ts" bson:"created_ts"`
	UpdatedTs time.Time    `json:"updated_ts" bson:"updated_ts"`

	// RootDiskFree mirrors the free bytes of the root disk found in Info
	// so that stores can filter on it.
	RootDiskFree *int64 `json:"-" bson:"root_disk_free,omitempty"`

	// LastAuditLog is only populated by the device details view.
	LastAuditLog *AuditLogEntry `json:"last_log,omitempty" bson:"-"`
}

// DeviceInventoryUpdate is the write applied to a known device when one of
// its reports is accepted.
type DeviceInventoryUpdate struct {
	ID           int64
	Name         string
	Info         Info
	RootDiskFree *int64
	// GroupID is only written when not nil.
	GroupID   *int64
	UpdatedTs time.Time
}

// AuditLogEntry captures the info a device had before an update changed it.
type AuditLogEntry struct {
	ID        int64     `json:"id" bson:"_id"`
	DeviceID  int64     `json:"device_id" bson:"device_id"`
	OldInfo   Info      `json:"old_info" bson:"old_info"`
	CreatedTs time.Time `json:"created_ts" bson:"created_ts"`
}

// DeviceFilter narrows down device listings. The booleans are resolved by
// the app into the concrete thresholds consumed by the stores.
type DeviceFilter struct {
	Query        string
	UpdatedAfter *time.Time
	Inactive     bool
	LowStorage   bool
	Status       DeviceStatus
	GroupID      *int64
	Skip         int
	Limit        int

	InactiveBefore *time.Time
	FreeBelow      *int64
}

func (f DeviceFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Status, validation.Skip.When(f.Status == "")),
		validation.Field(&f.Skip, validation.Min(0)),
		validation.Field(&f.Limit, validation.Min(0)),
	)
}

// DeviceCounters are the dashboard counters. Rejected devices are excluded.
type DeviceCounters struct {
	Total      int64 `json:"total"`
	Inactive   int64 `json:"inactive"`
	LowStorage int64 `json:"low_storage"`
}

// Change is one structural difference between two info documents.
type Change struct {
	Path string      `json:"path"`
	Old  interface{} `json:"old,omitempty"`
	New  interface{} `json:"new,omitempty"`
}

// DeviceChanges is the difference between the latest audit entry of a
// device and its current info.
type DeviceChanges struct {
	DeviceID int64      `json:"device_id"`
	Since    *time.Time `json:"since,omitempty"`
	Changes  []Change   `json:"changes"`
}
