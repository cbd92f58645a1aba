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
	"context"

	"github.com/pkg/errors"

	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
)

// resolveIdentity finds the device a report belongs to. It returns nil
// for a device seen for the first time, ErrIdentityMismatch when the
// token belongs to another mac address and ErrDuplicateHardware when the
// mac address is registered under a different token.
func (a *app) resolveIdentity(ctx context.Context, report *model.Report) (*model.Device, error) {
	if report.Token != "" {
		device, err := a.store.GetDeviceByToken(ctx, report.Token)
		if err != nil {
			return nil, errors.Wrap(err, "failed to look up device by token")
		}
		if device != nil {
			if device.MAC != report.MAC || device.Token != report.Token {
				return nil, ErrIdentityMismatch
			}
			return device, nil
		}
	}
	device, err := a.store.GetDeviceByMAC(ctx, report.MAC)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up device by mac")
	} else if device != nil {
		return nil, ErrDuplicateHardware
	}
	return nil, nil
}

// resolveGroup returns the group with the given code, creating it when it
// does not exist. An empty code resolves to no group.
func (a *app) resolveGroup(ctx context.Context, code string) (*model.Group, error) {
	if code == "" {
		return nil, nil
	}
	group, err := a.store.GetGroupByCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up group")
	} else if group != nil {
		return group, nil
	}

	now := a.Clock.Now()
	group = &model.Group{
		Code:      code,
		CreatedTs: now,
		UpdatedTs: now,
	}
	err = a.store.InsertGroup(ctx, group)
	if err == nil {
		groupsCreated.Inc()
		return group, nil
	} else if !errors.Is(err, store.ErrDuplicateGroup) {
		return nil, errors.Wrap(err, "failed to create group")
	}

	// another report created the group in the meantime
	group, err = a.store.GetGroupByCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up group")
	} else if group == nil {
		return nil, errors.Errorf("group %q vanished while being created", code)
	}
	return group, nil
}
