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

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

var (
	ErrInvalidReport = errors.New("invalid inventory report")
)

// Report is a device snapshot submitted by an agent.
type Report struct {
	// Token is the device token, empty on first contact.
	Token          string
	Hostname       string
	MAC            string
	LaboratoryCode string
	// Info is the whole body as received.
	Info Info
}

type reportHeader struct {
	Hostname       *string `json:"hostname"`
	MAC            *string `json:"mac"`
	LaboratoryCode *string `json:"laboratoryCode"`
}

func (h reportHeader) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Hostname, validation.NotNil),
		validation.Field(&h.MAC, validation.Required, validation.Length(1, 64)),
		validation.Field(&h.LaboratoryCode, validation.Length(0, 64)),
	)
}

// ParseReport validates the shape of a report body. Only hostname, mac and
// the optional laboratoryCode are checked; any other field is accepted.
func ParseReport(body []byte, token string) (*Report, error) {
	var header reportHeader
	if err := json.Unmarshal(body, &header); err != nil {
		return nil, errors.Wrap(ErrInvalidReport, err.Error())
	}
	if err := header.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidReport, err.Error())
	}
	// json.Unmarshal accepts "null" into a struct, the document must be
	// an object to be stored as info.
	if _, err := Info(body).Document(); err != nil {
		return nil, errors.Wrap(ErrInvalidReport, err.Error())
	}
	report := &Report{
		Token:    token,
		Hostname: *header.Hostname,
		MAC:      *header.MAC,
		Info:     append(Info(nil), body...),
	}
	if header.LaboratoryCode != nil {
		report.LaboratoryCode = *header.LaboratoryCode
	}
	return report, nil
}

// InventoryResult is the outcome of an accepted report.
type InventoryResult struct {
	ID      int64  `json:"id"`
	MAC     string `json:"mac"`
	Token   string `json:"token,omitempty"`
	Created bool   `json:"-"`
}
