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

	"github.com/labinventory/inventory/model"
)

// GetSubscriber returns the notification preferences of a user; a user
// who never saved them gets empty preferences.
func (a *app) GetSubscriber(ctx context.Context, id string) (*model.Subscriber, error) {
	subscriber, err := a.store.GetSubscriber(ctx, id)
	if err != nil {
		return nil, err
	} else if subscriber == nil {
		subscriber = &model.Subscriber{ID: id}
	}
	return subscriber, nil
}

// SaveSubscriber stores the notification preferences of a user. Only the
// enableNotification setting applies to users.
func (a *app) SaveSubscriber(ctx context.Context, subscriber *model.Subscriber) error {
	subscriber.Settings = model.Settings{
		EnableNotification: subscriber.Settings.EnableNotification,
	}
	subscriber.UpdatedTs = a.Clock.Now()
	return a.store.UpsertSubscriber(ctx, subscriber)
}
