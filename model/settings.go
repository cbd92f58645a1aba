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
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults applied when neither the global settings nor the group override
// set a value.
const (
	DefaultEnableRegistration             = true
	DefaultAutoApprove                    = true
	DefaultMinimumDiskSpaceInGigaForAlert = 20
)

// Settings is a sparse configuration document. The same shape is used for
// the global settings row, for group overrides and for the notification
// preferences of a subscriber; unset fields are nil.
type Settings struct {
	EnableRegistration             *bool  `json:"enableRegistration,omitempty" bson:"enableRegistration,omitempty"`
	AutoApprove                    *bool  `json:"autoApprove,omitempty" bson:"autoApprove,omitempty"`
	MinimumDiskSpaceInGigaForAlert *int64 `json:"minimumDiskSpaceInGigaForAlert,omitempty" bson:"minimumDiskSpaceInGigaForAlert,omitempty"`
	EnableNotification             *bool  `json:"enableNotification,omitempty" bson:"enableNotification,omitempty"`
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.MinimumDiskSpaceInGigaForAlert, validation.Min(int64(0))),
	)
}

// Merge returns a copy of s with every field set in override replacing the
// corresponding field of s.
func (s Settings) Merge(override *Settings) Settings {
	if override == nil {
		return s
	}
	if override.EnableRegistration != nil {
		s.EnableRegistration = override.EnableRegistration
	}
	if override.AutoApprove != nil {
		s.AutoApprove = override.AutoApprove
	}
	if override.MinimumDiskSpaceInGigaForAlert != nil {
		s.MinimumDiskSpaceInGigaForAlert = override.MinimumDiskSpaceInGigaForAlert
	}
	if override.EnableNotification != nil {
		s.EnableNotification = override.EnableNotification
	}
	return s
}

// EffectiveSettings is the fully resolved configuration used by the
// registration and alerting decisions.
type EffectiveSettings struct {
	EnableRegistration             bool  `json:"enableRegistration"`
	AutoApprove                    bool  `json:"autoApprove"`
	MinimumDiskSpaceInGigaForAlert int64 `json:"minimumDiskSpaceInGigaForAlert"`
}

// MinimumFreeBytes is the root free space below which a device is low on
// storage.
func (e EffectiveSettings) MinimumFreeBytes() uint64 {
	if e.MinimumDiskSpaceInGigaForAlert <= 0 {
		return 0
	}
	return uint64(e.MinimumDiskSpaceInGigaForAlert) * GigaByte
}

// MergeSettings merges the group override on top of the global settings and
// fills whatever is still unset with the defaults.
func MergeSettings(global *Settings, override *Settings) EffectiveSettings {
	var merged Settings
	if global != nil {
		merged = *global
	}
	merged = merged.Merge(override)

	eff := EffectiveSettings{
		EnableRegistration:             DefaultEnableRegistration,
		AutoApprove:                    DefaultAutoApprove,
		MinimumDiskSpaceInGigaForAlert: DefaultMinimumDiskSpaceInGigaForAlert,
	}
	if merged.EnableRegistration != nil {
		eff.EnableRegistration = *merged.EnableRegistration
	}
	if merged.AutoApprove != nil {
		eff.AutoApprove = *merged.AutoApprove
	}
	if merged.MinimumDiskSpaceInGigaForAlert != nil {
		eff.MinimumDiskSpaceInGigaForAlert = *merged.MinimumDiskSpaceInGigaForAlert
	}
	return eff
}
