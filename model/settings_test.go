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
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestMergeSettings(t *testing.T) {
	testCases := []struct {
		Name     string
		Global   *Settings
		Override *Settings
		Result   EffectiveSettings
	}{
		{
			Name: "defaults",
			Result: EffectiveSettings{
				EnableRegistration:             true,
				AutoApprove:                    true,
				MinimumDiskSpaceInGigaForAlert: 20,
			},
		},
		{
			Name: "global only",
			Global: &Settings{
				AutoApprove:                    boolPtr(false),
				MinimumDiskSpaceInGigaForAlert: int64Ptr(10),
			},
			Result: EffectiveSettings{
				EnableRegistration:             true,
				AutoApprove:                    false,
				MinimumDiskSpaceInGigaForAlert: 10,
			},
		},
		{
			Name: "override wins field by field",
			Global: &Settings{
				AutoApprove:                    boolPtr(false),
				MinimumDiskSpaceInGigaForAlert: int64Ptr(20),
			},
			Override: &Settings{
				MinimumDiskSpaceInGigaForAlert: int64Ptr(50),
			},
			Result: EffectiveSettings{
				EnableRegistration:             true,
				AutoApprove:                    false,
				MinimumDiskSpaceInGigaForAlert: 50,
			},
		},
		{
			Name:     "override without global",
			Override: &Settings{EnableRegistration: boolPtr(false)},
			Result: EffectiveSettings{
				EnableRegistration:             false,
				AutoApprove:                    true,
				MinimumDiskSpaceInGigaForAlert: 20,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Result, MergeSettings(tc.Global, tc.Override))
		})
	}
}

func TestSettingsMergeDoesNotModifyReceiver(t *testing.T) {
	global := Settings{AutoApprove: boolPtr(true)}
	merged := global.Merge(&Settings{AutoApprove: boolPtr(false)})
	assert.True(t, *global.AutoApprove)
	assert.False(t, *merged.AutoApprove)
}

func TestMinimumFreeBytes(t *testing.T) {
	assert.Equal(t, uint64(20*GigaByte),
		EffectiveSettings{MinimumDiskSpaceInGigaForAlert: 20}.MinimumFreeBytes())
	assert.Equal(t, uint64(0),
		EffectiveSettings{MinimumDiskSpaceInGigaForAlert: 0}.MinimumFreeBytes())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, Settings{}.Validate())
	assert.NoError(t, Settings{MinimumDiskSpaceInGigaForAlert: int64Ptr(0)}.Validate())
	assert.EqualError(t,
		Settings{MinimumDiskSpaceInGigaForAlert: int64Ptr(-1)}.Validate(),
		"minimumDiskSpaceInGigaForAlert: must be no less than 0.",
	)
}
