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

package server

import (
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/client/nats"
	"github.com/labinventory/inventory/client/smtp"
	"github.com/labinventory/inventory/client/workflows"
	dconfig "github.com/labinventory/inventory/config"
	"github.com/labinventory/inventory/store/relational"
)

func newConfig(settings map[string]interface{}) *viper.Viper {
	conf := viper.New()
	for _, d := range dconfig.Defaults {
		conf.SetDefault(d.Key, d.Value)
	}
	for key, value := range settings {
		conf.Set(key, value)
	}
	return conf
}

func newNATSServer(t *testing.T) string {
	srv, err := natsserver.NewServer(&natsserver.Options{
		Host: "127.0.0.1",
		Port: natsserver.RANDOM_PORT,
	})
	require.NoError(t, err)
	go srv.Start()
	t.Cleanup(srv.Shutdown)
	require.True(t, srv.ReadyForConnections(10*time.Second))
	return "nats://" + srv.Addr().String()
}

func TestSetupNotifier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name     string
		Settings func(t *testing.T) map[string]interface{}

		Notifier interface{}
		Error    error
	}{
		{
			Name: "none",
			Settings: func(t *testing.T) map[string]interface{} {
				return nil
			},
		},
		{
			Name: "smtp",
			Settings: func(t *testing.T) map[string]interface{} {
				return map[string]interface{}{
					dconfig.SettingNotificationBackend: NotificationBackendSMTP,
					dconfig.SettingSMTPHost:            "mail.lab.example.com",
				}
			},
			Notifier: &smtp.Client{},
		},
		{
			Name: "smtp, missing sender",
			Settings: func(t *testing.T) map[string]interface{} {
				return map[string]interface{}{
					dconfig.SettingNotificationBackend: NotificationBackendSMTP,
					dconfig.SettingSMTPFrom:            "",
				}
			},
			Error: smtp.ErrMissingFrom,
		},
		{
			Name: "workflows",
			Settings: func(t *testing.T) map[string]interface{} {
				return map[string]interface{}{
					dconfig.SettingNotificationBackend: NotificationBackendWorkflows,
				}
			},
			Notifier: workflows.NewClient("http://localhost"),
		},
		{
			Name: "nats",
			Settings: func(t *testing.T) map[string]interface{} {
				return map[string]interface{}{
					dconfig.SettingNotificationBackend: NotificationBackendNATS,
					dconfig.SettingNatsURI:             newNATSServer(t),
				}
			},
			Notifier: &nats.Notifier{},
		},
		{
			Name: "unknown",
			Settings: func(t *testing.T) map[string]interface{} {
				return map[string]interface{}{
					dconfig.SettingNotificationBackend: "pigeon",
				}
			},
			Error: ErrUnknownNotificationBackend,
		},
	}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			notifier, closer, err := SetupNotifier(newConfig(tc.Settings(t)))
			require.NotNil(t, closer)
			defer closer()

			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			if tc.Notifier == nil {
				assert.Nil(t, notifier)
			} else {
				assert.IsType(t, tc.Notifier, notifier)
			}
		})
	}
}

func TestSetupDataStore(t *testing.T) {
	t.Parallel()

	ds, err := SetupDataStore(newConfig(map[string]interface{}{
		dconfig.SettingStoreDriver: relational.DriverSQLite,
		dconfig.SettingSQLDSN:      "file:server_test?mode=memory&cache=shared",
	}), true)
	require.NoError(t, err)
	defer ds.Close()
	assert.IsType(t, &relational.DataStoreSQL{}, ds)

	ds, err = SetupDataStore(newConfig(map[string]interface{}{
		dconfig.SettingStoreDriver: "cassandra",
	}), false)
	assert.ErrorIs(t, err, ErrUnknownStoreDriver)
	assert.Nil(t, ds)
}

func TestAppConfig(t *testing.T) {
	t.Parallel()

	conf := newConfig(map[string]interface{}{
		dconfig.SettingNotificationRecipients: " it@lab.example.com, ,ops@lab.example.com",
		dconfig.SettingSettingsCacheTTL:       30,
		dconfig.SettingInactiveAfterDays:      3,
	})
	assert.Equal(t, app.Config{
		StaticRecipients: []string{"it@lab.example.com", "ops@lab.example.com"},
		SettingsCacheTTL: 30 * time.Second,
		UsageDeltaBytes:  dconfig.SettingAlertUsageDeltaBytesDefault,
		InactiveAfter:    3 * 24 * time.Hour,
	}, AppConfig(conf))

	conf = newConfig(map[string]interface{}{
		dconfig.SettingSettingsCacheTTL: 0,
	})
	config := AppConfig(conf)
	assert.Empty(t, config.StaticRecipients)
	assert.Zero(t, config.SettingsCacheTTL)
}

func TestRouterConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name     string
		Settings map[string]interface{}

		Useradm     bool
		CORSOrigins []string
		Error       error
	}{
		{
			Name:  "ko, no token verification",
			Error: ErrUnverifiedIdentity,
		},
		{
			Name: "ok, trusted gateway",
			Settings: map[string]interface{}{
				dconfig.SettingTrustGatewayIdentity: true,
			},
		},
		{
			Name: "ok, useradm",
			Settings: map[string]interface{}{
				dconfig.SettingUseradmURL:  "http://useradm:8080",
				dconfig.SettingCORSOrigins: "https://lab.example.com,https://admin.lab.example.com",
			},
			Useradm: true,
			CORSOrigins: []string{
				"https://lab.example.com",
				"https://admin.lab.example.com",
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			config, err := RouterConfig(newConfig(tc.Settings))
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Useradm, config.Useradm != nil)
			assert.ElementsMatch(t, tc.CORSOrigins, config.CORSOrigins)
		})
	}
}

func TestInitAndRunRequiresTokenVerification(t *testing.T) {
	err := InitAndRun(newConfig(nil), nil)
	assert.ErrorIs(t, err, ErrUnverifiedIdentity)
}
