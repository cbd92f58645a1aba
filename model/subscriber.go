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
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Subscriber holds the notification preferences of a dashboard user. The ID
// is the subject of the user's identity token.
type Subscriber struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Settings  Settings  `json:"settings" bson:"settings"`
	UpdatedTs time.Time `json:"updated_ts" bson:"updated_ts"`
}

func (s Subscriber) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Email, is.EmailFormat),
		validation.Field(&s.Settings),
	)
}

// NotificationsEnabled reports whether the subscriber opted in to alerts.
func (s Subscriber) NotificationsEnabled() bool {
	return s.Email != "" &&
		s.Settings.EnableNotification != nil &&
		*s.Settings.EnableNotification
}

// NotificationKind tells apart the alerts raised by the inventory.
type NotificationKind string

const (
	NotificationLowDiskSpace  NotificationKind = "low_disk_space"
	NotificationStorageChange NotificationKind = "storage_change"
)

// Notification is a message addressed to the opted-in recipients.
type Notification struct {
	Kind       NotificationKind `json:"kind" msgpack:"kind"`
	DeviceID   int64            `json:"device_id" msgpack:"device_id"`
	Recipients []string         `json:"recipients" msgpack:"recipients"`
	Subject    string           `json:"subject" msgpack:"subject"`
	Body       string           `json:"body" msgpack:"body"`
}
