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

// ListGroups returns all groups
func (a *app) ListGroups(ctx context.Context) ([]model.Group, error) {
	return a.store.ListGroups(ctx)
}

// GetGroup returns a group with its devices
func (a *app) GetGroup(ctx context.Context, id int64) (*model.Group, error) {
	group, err := a.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	} else if group == nil {
		return nil, ErrGroupNotFound
	}
	group.Devices, _, err = a.store.ListDevices(ctx, model.DeviceFilter{GroupID: &id})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// CreateGroup creates a group
func (a *app) CreateGroup(ctx context.Context, group *model.Group) error {
	now := a.Clock.Now()
	group.CreatedTs = now
	group.UpdatedTs = now
	err := a.store.InsertGroup(ctx, group)
	if errors.Is(err, store.ErrDuplicateGroup) {
		return ErrGroupExists
	}
	return err
}

// UpdateGroup replaces the code, description and settings of a group
func (a *app) UpdateGroup(ctx context.Context, group *model.Group) error {
	group.UpdatedTs = a.Clock.Now()
	err := a.store.UpdateGroup(ctx, group)
	if errors.Is(err, store.ErrDuplicateGroup) {
		return ErrGroupExists
	}
	return notFound(err, ErrGroupNotFound)
}

// DeleteGroup deletes a group; its devices are kept without group
func (a *app) DeleteGroup(ctx context.Context, id int64) error {
	err := a.store.DeleteGroup(ctx, id)
	return notFound(err, ErrGroupNotFound)
}
