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

package relational

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/labinventory/inventory/model"
)

const settingsKey = "settings"

type groupRow struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	Code        string         `gorm:"size:64;not null;uniqueIndex"`
	Description string         `gorm:"size:1024;not null;default:''"`
	Settings    datatypes.JSON `gorm:"type:json"`
	CreatedTs   time.Time      `gorm:"not null"`
	UpdatedTs   time.Time      `gorm:"not null"`
}

func (groupRow) TableName() string { return "laboratories" }

type deviceRow struct {
	ID           int64          `gorm:"primaryKey;autoIncrement"`
	MAC          string         `gorm:"column:mac;size:64;not null;uniqueIndex"`
	Token        string         `gorm:"size:128;not null;uniqueIndex"`
	Name         string         `gorm:"size:255;not null;index"`
	Status       string         `gorm:"size:16;not null;index"`
	Info         datatypes.JSON `gorm:"type:json"`
	GroupID      *int64         `gorm:"index"`
	Laboratory   *groupRow      `gorm:"foreignKey:GroupID"`
	RootDiskFree *int64         `gorm:"index"`
	CreatedTs    time.Time      `gorm:"not null"`
	UpdatedTs    time.Time      `gorm:"not null;index"`
}

func (deviceRow) TableName() string { return "devices" }

type auditLogRow struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	DeviceID  int64          `gorm:"not null;index"`
	OldInfo   datatypes.JSON `gorm:"type:json;not null"`
	CreatedTs time.Time      `gorm:"not null;index"`
}

func (auditLogRow) TableName() string { return "device_logs" }

type settingsRow struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"type:json;not null"`
	CreatedTs time.Time      `gorm:"not null"`
	UpdatedTs time.Time      `gorm:"not null"`
}

func (settingsRow) TableName() string { return "settings" }

type subscriberRow struct {
	ID                   string         `gorm:"primaryKey;size:255"`
	Email                string         `gorm:"size:320;not null;default:''"`
	Settings             datatypes.JSON `gorm:"type:json"`
	NotificationsEnabled bool           `gorm:"not null;index"`
	UpdatedTs            time.Time      `gorm:"not null"`
}

func (subscriberRow) TableName() string { return "subscribers" }

func marshalSettings(s *model.Settings) (datatypes.JSON, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func unmarshalSettings(raw datatypes.JSON) (*model.Settings, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	s := &model.Settings{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *groupRow) toModel() (*model.Group, error) {
	settings, err := unmarshalSettings(r.Settings)
	if err != nil {
		return nil, err
	}
	return &model.Group{
		ID:          r.ID,
		Code:        r.Code,
		Description: r.Description,
		Settings:    settings,
		CreatedTs:   r.CreatedTs,
		UpdatedTs:   r.UpdatedTs,
	}, nil
}

func newGroupRow(g *model.Group) (*groupRow, error) {
	settings, err := marshalSettings(g.Settings)
	if err != nil {
		return nil, err
	}
	return &groupRow{
		ID:          g.ID,
		Code:        g.Code,
		Description: g.Description,
		Settings:    settings,
		CreatedTs:   g.CreatedTs,
		UpdatedTs:   g.UpdatedTs,
	}, nil
}

func (r *deviceRow) toModel() (*model.Device, error) {
	dev := &model.Device{
		ID:           r.ID,
		MAC:          r.MAC,
		Token:        r.Token,
		Name:         r.Name,
		Status:       model.DeviceStatus(r.Status),
		GroupID:      r.GroupID,
		RootDiskFree: r.RootDiskFree,
		CreatedTs:    r.CreatedTs,
		UpdatedTs:    r.UpdatedTs,
	}
	if len(r.Info) > 0 {
		dev.Info = model.Info(r.Info)
	}
	// a left join without a match scans into a zero row
	if r.Laboratory != nil && r.Laboratory.ID != 0 {
		group, err := r.Laboratory.toModel()
		if err != nil {
			return nil, err
		}
		dev.Group = group
	}
	return dev, nil
}

func newDeviceRow(d *model.Device) *deviceRow {
	row := &deviceRow{
		ID:           d.ID,
		MAC:          d.MAC,
		Token:        d.Token,
		Name:         d.Name,
		Status:       string(d.Status),
		GroupID:      d.GroupID,
		RootDiskFree: d.RootDiskFree,
		CreatedTs:    d.CreatedTs,
		UpdatedTs:    d.UpdatedTs,
	}
	if len(d.Info) > 0 {
		row.Info = datatypes.JSON(d.Info)
	}
	return row
}

func (r *auditLogRow) toModel() model.AuditLogEntry {
	return model.AuditLogEntry{
		ID:        r.ID,
		DeviceID:  r.DeviceID,
		OldInfo:   model.Info(r.OldInfo),
		CreatedTs: r.CreatedTs,
	}
}

func (r *subscriberRow) toModel() (*model.Subscriber, error) {
	sub := &model.Subscriber{
		ID:        r.ID,
		Email:     r.Email,
		UpdatedTs: r.UpdatedTs,
	}
	settings, err := unmarshalSettings(r.Settings)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		sub.Settings = *settings
	}
	return sub, nil
}
