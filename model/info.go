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
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// GigaByte is the unit used by the disk space settings and notifications.
const GigaByte = 1 << 30

// RootMountpoint identifies the disk checked by the low space alert.
const RootMountpoint = "/"

var (
	ErrInfoNotObject = errors.New("info document must be a JSON object")
)

// Info is the telemetry document reported by a device agent. The bytes are
// kept exactly as received so that they round-trip through storage.
type Info []byte

// MarshalJSON emits the raw document.
func (i Info) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("null"), nil
	}
	return i, nil
}

// UnmarshalJSON stores a copy of the raw document.
func (i *Info) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*i = nil
		return nil
	}
	*i = append((*i)[:0], b...)
	return nil
}

// IsEmpty reports whether there is no prior document.
func (i Info) IsEmpty() bool {
	trimmed := bytes.TrimSpace(i)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Document decodes the info into generic maps and slices. Numbers are kept
// as json.Number so that no precision is lost.
func (i Info) Document() (map[string]interface{}, error) {
	if i.IsEmpty() {
		return nil, nil
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(i))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode info document")
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, ErrInfoNotObject
	}
	return obj, nil
}

// Disk is a single entry of the info "disks" list. Sizes are in bytes.
type Disk struct {
	Device     string `json:"device" mapstructure:"device"`
	Mountpoint string `json:"mountpoint" mapstructure:"mountpoint"`
	Type       string `json:"type" mapstructure:"type"`
	Total      uint64 `json:"total" mapstructure:"total"`
	Used       uint64 `json:"used" mapstructure:"used"`
	Free       uint64 `json:"free" mapstructure:"free"`
}

// InfoSummary holds the few info fields the service acts upon; everything
// else in the document is passed through untouched. The labels are
// rendered as text whatever their reported type.
type InfoSummary struct {
	Hostname       string `mapstructure:"hostname"`
	MAC            string `mapstructure:"mac"`
	IP             string `mapstructure:"ip"`
	LaboratoryCode string `mapstructure:"laboratoryCode"`
	Disks          []Disk `mapstructure:"-"`
}

// RootDisk returns the disk mounted at "/", or nil when not reported.
func (s *InfoSummary) RootDisk() *Disk {
	if s == nil {
		return nil
	}
	for i := range s.Disks {
		if s.Disks[i].Mountpoint == RootMountpoint {
			return &s.Disks[i]
		}
	}
	return nil
}

var typeJSONNumber = reflect.TypeOf(json.Number(""))

func jsonNumberHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from != typeJSONNumber {
		return data, nil
	}
	n := data.(json.Number)
	switch to.Kind() {
	case reflect.String:
		return n.String(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	return n.Float64()
}

// textOf renders a label value; lists are joined with ", ".
func textOf(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, textOf(item))
		}
		return strings.Join(items, ", ")
	}
	return fmt.Sprint(v)
}

func labelHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	return textOf(data), nil
}

func decodeInto(doc map[string]interface{}, hook mapstructure.DecodeHookFunc, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: hook,
		Result:     result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(doc)
}

// Summary extracts the InfoSummary out of the document. Labels never fail
// the decoding; a malformed disk list does.
func (i Info) Summary() (*InfoSummary, error) {
	doc, err := i.Document()
	if err != nil {
		return nil, err
	}
	summary := &InfoSummary{}
	if doc == nil {
		return summary, nil
	}
	if err := decodeInto(doc, labelHook, summary); err != nil {
		return nil, errors.Wrap(err, "failed to decode info labels")
	}
	var disks struct {
		Disks []Disk `mapstructure:"disks"`
	}
	if err := decodeInto(doc, jsonNumberHook, &disks); err != nil {
		return nil, errors.Wrap(err, "failed to decode info disks")
	}
	summary.Disks = disks.Disks
	return summary, nil
}
