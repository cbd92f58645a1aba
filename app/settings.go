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
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"

	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
)

const settingsCacheKey = "global"

// settingsLoader reads the global settings through a short lived cache.
// Hits do not extend the lifetime of the entry, so a change made through
// another instance is picked up within the TTL.
type settingsLoader struct {
	store store.DataStore
	cache *ttlcache.Cache[string, *model.Settings]
}

func newSettingsLoader(ds store.DataStore, ttl time.Duration) *settingsLoader {
	loader := &settingsLoader{store: ds}
	if ttl > 0 {
		loader.cache = ttlcache.New[string, *model.Settings](
			ttlcache.WithTTL[string, *model.Settings](ttl),
			ttlcache.WithDisableTouchOnHit[string, *model.Settings](),
		)
		go loader.cache.Start()
	}
	return loader
}

// Load returns the global settings. The result is shared and must not be
// modified.
func (l *settingsLoader) Load(ctx context.Context) (*model.Settings, error) {
	if l.cache != nil {
		if item := l.cache.Get(settingsCacheKey); item != nil {
			return item.Value(), nil
		}
	}
	settings, err := l.store.GetSettings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}
	if settings == nil {
		settings = &model.Settings{}
	}
	if l.cache != nil {
		l.cache.Set(settingsCacheKey, settings, ttlcache.DefaultTTL)
	}
	return settings, nil
}

func (l *settingsLoader) Invalidate() {
	if l.cache != nil {
		l.cache.Delete(settingsCacheKey)
	}
}

func (l *settingsLoader) Stop() {
	if l.cache != nil {
		l.cache.Stop()
	}
}

// GetSettings returns the stored global settings
func (a *app) GetSettings(ctx context.Context) (*model.Settings, error) {
	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	} else if settings == nil {
		settings = &model.Settings{}
	}
	return settings, nil
}

// SaveSettings replaces the global settings
func (a *app) SaveSettings(ctx context.Context, settings *model.Settings) error {
	// enableNotification is a per user preference
	saved := *settings
	saved.EnableNotification = nil
	if err := a.store.SaveSettings(ctx, &saved); err != nil {
		return err
	}
	a.settings.Invalidate()
	return nil
}
