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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = ":8080"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingStoreDriver is the config key for the storage backend:
	// sqlite, postgres or mongo
	SettingStoreDriver = "store_driver"
	// SettingStoreDriverDefault is the default storage backend
	SettingStoreDriverDefault = "sqlite"

	// SettingSQLDSN is the config key for the relational database DSN
	SettingSQLDSN = "sql_dsn"
	// SettingSQLDSNDefault is the default relational database DSN
	SettingSQLDSNDefault = "inventory.db"

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://localhost:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "inventory"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingSettingsCacheTTL is the config key for the number of seconds
	// the global settings are cached; 0 disables the cache
	SettingSettingsCacheTTL = "settings_cache_ttl"
	// SettingSettingsCacheTTLDefault is the default settings cache TTL
	SettingSettingsCacheTTLDefault = 5

	// SettingNotificationBackend is the config key for the notification
	// backend: smtp, workflows, nats or none
	SettingNotificationBackend = "notification_backend"
	// SettingNotificationBackendDefault is the default notification backend
	SettingNotificationBackendDefault = "none"

	// SettingNotificationRecipients is the config key for the comma
	// separated list of addresses notified on top of the opted-in users
	SettingNotificationRecipients = "notification_recipients"

	// SettingSMTPHost is the config key for the SMTP server host
	SettingSMTPHost = "smtp_host"
	// SettingSMTPHostDefault is the default SMTP server host
	SettingSMTPHostDefault = "localhost"

	// SettingSMTPPort is the config key for the SMTP server port
	SettingSMTPPort = "smtp_port"
	// SettingSMTPPortDefault is the default SMTP server port
	SettingSMTPPortDefault = 25

	// SettingSMTPUsername is the config key for the SMTP username
	SettingSMTPUsername = "smtp_username"

	// SettingSMTPPassword is the config key for the SMTP password
	SettingSMTPPassword = "smtp_password"

	// SettingSMTPFrom is the config key for the sender address
	SettingSMTPFrom = "smtp_from"
	// SettingSMTPFromDefault is the default sender address
	SettingSMTPFromDefault = "inventory@localhost"

	// SettingWorkflowsURL is the config key for the workflows url
	SettingWorkflowsURL = "workflows_url"
	// SettingWorkflowsURLDefault is the default value for the workflows url
	SettingWorkflowsURLDefault = "http://mender-workflows-server:8080"

	// SettingNatsURI is the config key for the nats uri
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = "nats://localhost:4222"

	// SettingNatsNotificationSubject is the config key for the subject
	// notifications are published to
	SettingNatsNotificationSubject = "nats_notification_subject"
	// SettingNatsNotificationSubjectDefault is the default notification subject
	SettingNatsNotificationSubjectDefault = "inventory.notifications"

	// SettingAlertUsageDeltaBytes is the config key for the disk usage
	// change that raises a storage change notification
	SettingAlertUsageDeltaBytes = "alert_usage_delta_bytes"
	// SettingAlertUsageDeltaBytesDefault is the default usage delta (2GB)
	SettingAlertUsageDeltaBytesDefault = 2000000000

	// SettingInactiveAfterDays is the config key for the number of days
	// without reports after which a device counts as inactive
	SettingInactiveAfterDays = "inactive_after_days"
	// SettingInactiveAfterDaysDefault is the default inactivity period
	SettingInactiveAfterDaysDefault = 7

	// SettingUseradmURL is the config key for the useradm url verifying the
	// management tokens
	SettingUseradmURL = "useradm_url"

	// SettingTrustGatewayIdentity is the config key allowing the server to
	// start without useradm_url. The management API then trusts the JWT
	// claims as they are, without checking the signature, so it must only
	// be enabled behind a gateway which verifies the tokens.
	SettingTrustGatewayIdentity = "trust_gateway_identity"
	// SettingTrustGatewayIdentityDefault is the default value for trusting
	// the gateway identity
	SettingTrustGatewayIdentityDefault = false

	// SettingCORSOrigins is the config key for the comma separated list of
	// origins allowed to call the management API
	SettingCORSOrigins = "cors_origins"
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingStoreDriver, Value: SettingStoreDriverDefault},
		{Key: SettingSQLDSN, Value: SettingSQLDSNDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingSettingsCacheTTL, Value: SettingSettingsCacheTTLDefault},
		{Key: SettingNotificationBackend, Value: SettingNotificationBackendDefault},
		{Key: SettingSMTPHost, Value: SettingSMTPHostDefault},
		{Key: SettingSMTPPort, Value: SettingSMTPPortDefault},
		{Key: SettingSMTPFrom, Value: SettingSMTPFromDefault},
		{Key: SettingWorkflowsURL, Value: SettingWorkflowsURLDefault},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingNatsNotificationSubject, Value: SettingNatsNotificationSubjectDefault},
		{Key: SettingAlertUsageDeltaBytes, Value: SettingAlertUsageDeltaBytesDefault},
		{Key: SettingInactiveAfterDays, Value: SettingInactiveAfterDaysDefault},
		{Key: SettingTrustGatewayIdentity, Value: SettingTrustGatewayIdentityDefault},
	}
)
