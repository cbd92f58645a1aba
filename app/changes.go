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
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/labinventory/inventory/model"
)

const (
	diskPathMarker = "disk"
	diskUsedKey    = "used"
)

// diskUsageDelta is a change of the "used" bytes of a disk entry.
type diskUsageDelta struct {
	Path  string
	Delta uint64
}

// changeSet is the outcome of comparing two info documents.
type changeSet struct {
	Changes    []model.Change
	DiskDeltas []diskUsageDelta
}

// Changed reports whether the documents differ.
func (c *changeSet) Changed() bool {
	return c != nil && len(c.Changes) > 0
}

// changeReporter collects the differences found by cmp.
type changeReporter struct {
	path    cmp.Path
	changes []model.Change
}

func (r *changeReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *changeReporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	vx, vy := r.path.Last().Values()
	r.changes = append(r.changes, model.Change{
		Path: formatPath(r.path),
		Old:  valueOf(vx),
		New:  valueOf(vy),
	})
}

func (r *changeReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

func valueOf(v reflect.Value) interface{} {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

// formatPath renders map keys joined by dots and list positions in
// brackets, e.g. disks[0].used.
func formatPath(p cmp.Path) string {
	var sb strings.Builder
	for _, step := range p {
		switch s := step.(type) {
		case cmp.MapIndex:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			fmt.Fprint(&sb, s.Key().Interface())
		case cmp.SliceIndex:
			idx, idy := s.SplitKeys()
			if idy < 0 {
				idy = idx
			}
			fmt.Fprintf(&sb, "[%d]", idy)
		}
	}
	return sb.String()
}

// numberPrecision keeps 64 bit integers and float64 values exact.
const numberPrecision = 128

func parseNumber(n json.Number) (*big.Float, bool) {
	f, _, err := big.ParseFloat(n.String(), 10, numberPrecision, big.ToNearestEven)
	return f, err == nil
}

// equalNumbers compares numbers by value, so 2400 equals 2400.0 and 1e2.
var equalNumbers = cmp.Comparer(func(x, y json.Number) bool {
	fx, okx := parseNumber(x)
	fy, oky := parseNumber(y)
	if !okx || !oky {
		return x == y
	}
	return fx.Cmp(fy) == 0
})

// detectChanges compares the stored info with the reported one. Objects
// are compared by key set, lists by position and numbers by value. It
// returns nil when there is no prior document to compare with.
func detectChanges(oldInfo, newInfo model.Info) (*changeSet, error) {
	if oldInfo.IsEmpty() {
		return nil, nil
	}
	oldDoc, err := oldInfo.Document()
	if err != nil {
		return nil, err
	}
	newDoc, err := newInfo.Document()
	if err != nil {
		return nil, err
	}
	reporter := &changeReporter{}
	if cmp.Equal(oldDoc, newDoc, equalNumbers, cmp.Reporter(reporter)) {
		return &changeSet{}, nil
	}
	changes := &changeSet{Changes: reporter.changes}
	for _, change := range reporter.changes {
		if delta, ok := diskUsageChange(change); ok {
			changes.DiskDeltas = append(changes.DiskDeltas, delta)
		}
	}
	return changes, nil
}

// diskUsageChange extracts the delta of a modified "used" value found
// below a disk entry.
func diskUsageChange(change model.Change) (diskUsageDelta, bool) {
	if !strings.Contains(change.Path, diskPathMarker) ||
		!strings.HasSuffix(change.Path, "."+diskUsedKey) {
		return diskUsageDelta{}, false
	}
	oldBytes, ok := numberOf(change.Old)
	if !ok {
		oldBytes = 0
	}
	newBytes, ok := numberOf(change.New)
	if !ok {
		return diskUsageDelta{}, false
	}
	return diskUsageDelta{
		Path:  change.Path,
		Delta: uint64(math.Abs(newBytes - oldBytes)),
	}, true
}

func numberOf(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
