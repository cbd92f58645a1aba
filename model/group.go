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

// Group is a laboratory: an organizational bucket of devices identified
// by a short unique code.
type Group struct {
	ID          int64     `json:"id" bson:"_id"`
	Code        string    `json:"code" bson:"code"`
	Description string    `json:"description" bson:"description"`
	Settings    *Settings `json:"settings,omitempty" bson:"settings,omitempty"`
	CreatedTs   time.Time `json:"created_ts" bson:"created_ts"`
	UpdatedTs   time.Time `json:"updated_ts" bson:"updated_ts"`

	// Devices is only populated by the group details view.
	Devices []Device `json:"devices,omitempty" bson:"-"`
}

func (g Group) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Code,
			validation.Required,
			validation.Length(1, 64),
		),
		validation.Field(&g.Description, validation.Length(0, 1024)),
		validation.Field(&g.Settings),
	)
}
