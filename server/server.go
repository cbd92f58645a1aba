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
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sys/unix"

	api "github.com/labinventory/inventory/api/http"
	"github.com/labinventory/inventory/app"
	"github.com/labinventory/inventory/client/nats"
	"github.com/labinventory/inventory/client/smtp"
	"github.com/labinventory/inventory/client/useradm"
	"github.com/labinventory/inventory/client/workflows"
	dconfig "github.com/labinventory/inventory/config"
	"github.com/labinventory/inventory/store"
	"github.com/labinventory/inventory/store/mongo"
	"github.com/labinventory/inventory/store/relational"
)

// Notification backends
const (
	NotificationBackendNone      = "none"
	NotificationBackendSMTP      = "smtp"
	NotificationBackendWorkflows = "workflows"
	NotificationBackendNATS      = "nats"
)

// StoreDriverMongo selects the mongo store; the relational drivers are
// named after their gorm dialect.
const StoreDriverMongo = "mongo"

const (
	shutdownTimeout      = 5 * time.Second
	notificationsTimeout = 10 * time.Second
)

// ErrUnknownStoreDriver is returned for an unsupported store_driver setting
var ErrUnknownStoreDriver = errors.New("unknown store driver")

// ErrUnknownNotificationBackend is returned for an unsupported
// notification_backend setting
var ErrUnknownNotificationBackend = errors.New("unknown notification backend")

// ErrUnverifiedIdentity is returned when the management API would accept
// tokens nobody verifies
var ErrUnverifiedIdentity = errors.New(
	"useradm_url is not set: set it or enable trust_gateway_identity " +
		"when a gateway verifies the management tokens")

// SetupDataStore connects to the store selected by the store_driver setting
func SetupDataStore(conf config.Reader, automigrate bool) (store.DataStore, error) {
	var (
		ds  store.DataStore
		err error
	)
	switch driver := conf.GetString(dconfig.SettingStoreDriver); driver {
	case relational.DriverSQLite, relational.DriverPostgres:
		var sqlStore *relational.DataStoreSQL
		sqlStore, err = relational.SetupDataStore(conf, automigrate)
		if err == nil {
			ds = sqlStore
		}
	case StoreDriverMongo:
		var mongoStore *mongo.DataStoreMongo
		mongoStore, err = mongo.SetupDataStore(conf, automigrate)
		if err == nil {
			ds = mongoStore
		}
	default:
		err = errors.Wrap(ErrUnknownStoreDriver, driver)
	}
	return ds, err
}

// SetupNotifier builds the notifier selected by the notification_backend
// setting. The returned closer releases the backend connection.
func SetupNotifier(conf config.Reader) (app.Notifier, func(), error) {
	noop := func() {}
	switch backend := conf.GetString(dconfig.SettingNotificationBackend); backend {
	case NotificationBackendNone, "":
		return nil, noop, nil
	case NotificationBackendSMTP:
		client, err := smtp.NewClient(smtp.Config{
			Host:     conf.GetString(dconfig.SettingSMTPHost),
			Port:     conf.GetInt(dconfig.SettingSMTPPort),
			Username: conf.GetString(dconfig.SettingSMTPUsername),
			Password: conf.GetString(dconfig.SettingSMTPPassword),
			From:     conf.GetString(dconfig.SettingSMTPFrom),
		})
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil
	case NotificationBackendWorkflows:
		return workflows.NewClient(conf.GetString(dconfig.SettingWorkflowsURL)), noop, nil
	case NotificationBackendNATS:
		client, err := nats.NewClientWithDefaults(conf.GetString(dconfig.SettingNatsURI))
		if err != nil {
			return nil, noop, errors.Wrap(err, "failed to connect to nats")
		}
		notifier := nats.NewNotifier(client,
			conf.GetString(dconfig.SettingNatsNotificationSubject))
		return notifier, client.Close, nil
	default:
		return nil, noop, errors.Wrap(ErrUnknownNotificationBackend, backend)
	}
}

func splitList(s string) []string {
	items := lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Compact(items)
}

// AppConfig reads the app tunables from conf
func AppConfig(conf config.Reader) app.Config {
	return app.Config{
		StaticRecipients: splitList(conf.GetString(dconfig.SettingNotificationRecipients)),
		SettingsCacheTTL: time.Duration(
			conf.GetInt(dconfig.SettingSettingsCacheTTL)) * time.Second,
		UsageDeltaBytes: uint64(conf.GetInt(dconfig.SettingAlertUsageDeltaBytes)),
		InactiveAfter: time.Duration(
			conf.GetInt(dconfig.SettingInactiveAfterDays)) * 24 * time.Hour,
	}
}

// RouterConfig reads the API settings from conf. Without useradm the
// management tokens are only decoded, which is refused unless a gateway
// in front of the service is trusted to verify them.
func RouterConfig(conf config.Reader) (api.Config, error) {
	routerConfig := api.Config{
		CORSOrigins: splitList(conf.GetString(dconfig.SettingCORSOrigins)),
	}
	if url := conf.GetString(dconfig.SettingUseradmURL); url != "" {
		routerConfig.Useradm = useradm.NewClient(url)
	} else if !conf.GetBool(dconfig.SettingTrustGatewayIdentity) {
		return routerConfig, ErrUnverifiedIdentity
	}
	return routerConfig, nil
}

// InitAndRun initializes the server and runs it
func InitAndRun(conf config.Reader, dataStore store.DataStore) error {
	ctx := context.Background()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	routerConfig, err := RouterConfig(conf)
	if err != nil {
		return err
	}
	if routerConfig.Useradm == nil {
		l.Warn("management tokens are not verified, " +
			"relying on the gateway to verify them")
	}

	notifier, closeNotifier, err := SetupNotifier(conf)
	if err != nil {
		return err
	}
	defer closeNotifier()

	inventoryApp := app.New(dataStore, notifier, AppConfig(conf))

	var listen = conf.GetString(dconfig.SettingListen)
	router, err := api.NewRouter(inventoryApp, routerConfig)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		l.Infof("listening on %s", listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	select {
	case sig := <-quit:
		l.Infof("received signal %s: shutting down", sig)
	case err := <-errChan:
		return errors.Wrap(err, "listen")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Error("server shutdown: ", err)
	}
	inventoryApp.Shutdown(notificationsTimeout)

	return nil
}
