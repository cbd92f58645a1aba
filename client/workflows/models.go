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

package workflows

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// EmailWorkflow is the input of the send_email workflow
type EmailWorkflow struct {
	RequestID string   `json:"request_id"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Kind      string   `json:"kind,omitempty"`
	DeviceID  int64    `json:"device_id,omitempty"`
}

func (w EmailWorkflow) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.To,
			validation.Required,
			validation.Each(validation.Required, is.EmailFormat),
		),
		validation.Field(&w.Subject, validation.Required),
	)
}
