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

package relational

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	dconfig "github.com/labinventory/inventory/config"
	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
)

// Supported values of the store_driver setting
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SetupDataStore opens the relational database configured in c and
// optionally migrates its schema.
func SetupDataStore(c config.Reader, automigrate bool) (*DataStoreSQL, error) {
	ctx := context.Background()
	ds, err := Open(c.GetString(dconfig.SettingStoreDriver), c.GetString(dconfig.SettingSQLDSN))
	if err != nil {
		return nil, err
	}
	if automigrate {
		if err := ds.Migrate(ctx); err != nil {
			ds.Close()
			return nil, err
		}
	}
	return ds, nil
}

// Open connects to the database using the given gorm dialect.
func Open(driver, dsn string) (*DataStoreSQL, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported store driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers, a single connection avoids
		// "database is locked" errors on concurrent transactions.
		sqlDB.SetMaxOpenConns(1)
	}
	return NewDataStoreWithDB(db), nil
}

// DataStoreSQL is the relational data storage service
type DataStoreSQL struct {
	db *gorm.DB
}

// NewDataStoreWithDB initializes a DataStore object
func NewDataStoreWithDB(db *gorm.DB) *DataStoreSQL {
	return &DataStoreSQL{db: db}
}

// Migrate creates or updates the schema.
func (ds *DataStoreSQL) Migrate(ctx context.Context) error {
	err := ds.db.WithContext(ctx).AutoMigrate(
		&groupRow{},
		&deviceRow{},
		&auditLogRow{},
		&settingsRow{},
		&subscriberRow{},
	)
	return errors.Wrap(err, "failed to run migrations")
}

func (ds *DataStoreSQL) sqlDB() (*sql.DB, error) {
	return ds.db.DB()
}

// Ping verifies the connection to the database
func (ds *DataStoreSQL) Ping(ctx context.Context) error {
	sqlDB, err := ds.sqlDB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (ds *DataStoreSQL) Close() error {
	sqlDB, err := ds.sqlDB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (ds *DataStoreSQL) findDevice(ctx context.Context, query string, args ...interface{}) (*model.Device, error) {
	var row deviceRow
	err := ds.db.WithContext(ctx).
		Joins("Laboratory").
		Where(query, args...).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return row.toModel()
}

// GetDevice returns a device and its group
func (ds *DataStoreSQL) GetDevice(ctx context.Context, id int64) (*model.Device, error) {
	return ds.findDevice(ctx, "devices.id = ?", id)
}

// GetDeviceByToken returns the device owning the token, with its group
func (ds *DataStoreSQL) GetDeviceByToken(ctx context.Context, token string) (*model.Device, error) {
	return ds.findDevice(ctx, "devices.token = ?", token)
}

// GetDeviceByMAC returns the device registered with the MAC address
func (ds *DataStoreSQL) GetDeviceByMAC(ctx context.Context, mac string) (*model.Device, error) {
	return ds.findDevice(ctx, "devices.mac = ?", mac)
}

// InsertDevice inserts a new device and sets its ID
func (ds *DataStoreSQL) InsertDevice(ctx context.Context, device *model.Device) error {
	row := newDeviceRow(device)
	row.ID = 0
	err := ds.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
	if isDuplicate(err) {
		return store.ErrDuplicateDevice
	} else if err != nil {
		return errors.Wrap(err, "failed to insert device")
	}
	device.ID = row.ID
	return nil
}

// UpdateDeviceInventory applies an accepted report and, when given, inserts
// the audit log entry in the same transaction.
func (ds *DataStoreSQL) UpdateDeviceInventory(
	ctx context.Context,
	update *model.DeviceInventoryUpdate,
	auditLog *model.AuditLogEntry,
) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values := map[string]interface{}{
			"name":           update.Name,
			"info":           datatypes.JSON(update.Info),
			"root_disk_free": update.RootDiskFree,
			"updated_ts":     update.UpdatedTs,
		}
		if update.GroupID != nil {
			values["group_id"] = *update.GroupID
		}
		res := tx.Model(&deviceRow{}).
			Where("id = ?", update.ID).
			Updates(values)
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to update device")
		} else if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		if auditLog == nil {
			return nil
		}
		row := &auditLogRow{
			DeviceID:  update.ID,
			OldInfo:   datatypes.JSON(auditLog.OldInfo),
			CreatedTs: auditLog.CreatedTs,
		}
		if err := tx.Create(row).Error; err != nil {
			return errors.Wrap(err, "failed to insert audit log")
		}
		auditLog.ID = row.ID
		auditLog.DeviceID = update.ID
		return nil
	})
}

// UpdateDeviceStatus sets the approval status of a device
func (ds *DataStoreSQL) UpdateDeviceStatus(ctx context.Context, id int64, status model.DeviceStatus) error {
	res := ds.db.WithContext(ctx).
		Model(&deviceRow{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	} else if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetDevicesGroup links the devices to the group, or unlinks them when
// groupID is nil.
func (ds *DataStoreSQL) SetDevicesGroup(ctx context.Context, ids []int64, groupID *int64) error {
	if len(ids) == 0 {
		return nil
	}
	res := ds.db.WithContext(ctx).
		Model(&deviceRow{}).
		Where("id IN ?", ids).
		Update("group_id", groupID)
	if res.Error != nil {
		return res.Error
	} else if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteDevice deletes a device together with its audit logs
func (ds *DataStoreSQL) DeleteDevice(ctx context.Context, id int64) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("device_id = ?", id).Delete(&auditLogRow{}).Error
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&deviceRow{})
		if res.Error != nil {
			return res.Error
		} else if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func applyDeviceFilter(q *gorm.DB, filter model.DeviceFilter) *gorm.DB {
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		if id, err := strconv.ParseInt(filter.Query, 10, 64); err == nil {
			q = q.Where("LOWER(devices.mac) LIKE ? OR LOWER(devices.name) LIKE ? OR devices.id = ?",
				like, like, id)
		} else {
			q = q.Where("LOWER(devices.mac) LIKE ? OR LOWER(devices.name) LIKE ?", like, like)
		}
	}
	if filter.UpdatedAfter != nil {
		q = q.Where("devices.updated_ts >= ?", *filter.UpdatedAfter)
	}
	if filter.InactiveBefore != nil {
		q = q.Where("devices.updated_ts <= ?", *filter.InactiveBefore)
	}
	if filter.FreeBelow != nil {
		q = q.Where("devices.root_disk_free IS NOT NULL AND devices.root_disk_free < ?",
			*filter.FreeBelow)
	}
	if filter.Status != "" {
		q = q.Where("devices.status = ?", string(filter.Status))
	}
	if filter.GroupID != nil {
		q = q.Where("devices.group_id = ?", *filter.GroupID)
	}
	return q
}

// ListDevices returns a page of the devices matching the filter and the
// total number of matches.
func (ds *DataStoreSQL) ListDevices(
	ctx context.Context,
	filter model.DeviceFilter,
) ([]model.Device, int, error) {
	var total int64
	err := applyDeviceFilter(ds.db.WithContext(ctx).Model(&deviceRow{}), filter).
		Count(&total).Error
	if err != nil {
		return nil, -1, errors.Wrap(err, "failed to count devices")
	}

	q := applyDeviceFilter(ds.db.WithContext(ctx).Joins("Laboratory"), filter).
		Order("devices.id")
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []deviceRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, -1, errors.Wrap(err, "failed to list devices")
	}
	devices := make([]model.Device, 0, len(rows))
	for i := range rows {
		dev, err := rows[i].toModel()
		if err != nil {
			return nil, -1, err
		}
		devices = append(devices, *dev)
	}
	return devices, int(total), nil
}

// CountDevices computes the dashboard counters, skipping rejected devices.
func (ds *DataStoreSQL) CountDevices(
	ctx context.Context,
	filter model.DeviceFilter,
) (*model.DeviceCounters, error) {
	count := func(f model.DeviceFilter) (int64, error) {
		var n int64
		err := applyDeviceFilter(ds.db.WithContext(ctx).Model(&deviceRow{}), f).
			Where("devices.status <> ?", string(model.DeviceStatusRejected)).
			Count(&n).Error
		return n, err
	}
	var (
		counters = &model.DeviceCounters{}
		err      error
	)
	if counters.Total, err = count(model.DeviceFilter{}); err != nil {
		return nil, err
	}
	if filter.InactiveBefore != nil {
		counters.Inactive, err = count(model.DeviceFilter{InactiveBefore: filter.InactiveBefore})
		if err != nil {
			return nil, err
		}
	}
	if filter.FreeBelow != nil {
		counters.LowStorage, err = count(model.DeviceFilter{FreeBelow: filter.FreeBelow})
		if err != nil {
			return nil, err
		}
	}
	return counters, nil
}

// GetAuditLogs returns the most recent audit log entries of a device
func (ds *DataStoreSQL) GetAuditLogs(ctx context.Context, deviceID int64, limit int) ([]model.AuditLogEntry, error) {
	q := ds.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("created_ts DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []auditLogRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	logs := make([]model.AuditLogEntry, len(rows))
	for i := range rows {
		logs[i] = rows[i].toModel()
	}
	return logs, nil
}

func (ds *DataStoreSQL) findGroup(ctx context.Context, query string, args ...interface{}) (*model.Group, error) {
	var row groupRow
	err := ds.db.WithContext(ctx).Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return row.toModel()
}

// GetGroup returns a group by id
func (ds *DataStoreSQL) GetGroup(ctx context.Context, id int64) (*model.Group, error) {
	return ds.findGroup(ctx, "id = ?", id)
}

// GetGroupByCode returns a group by its code
func (ds *DataStoreSQL) GetGroupByCode(ctx context.Context, code string) (*model.Group, error) {
	return ds.findGroup(ctx, "code = ?", code)
}

// ListGroups returns every group ordered by code
func (ds *DataStoreSQL) ListGroups(ctx context.Context) ([]model.Group, error) {
	var rows []groupRow
	if err := ds.db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, err
	}
	groups := make([]model.Group, 0, len(rows))
	for i := range rows {
		group, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

// InsertGroup inserts a group and sets its ID
func (ds *DataStoreSQL) InsertGroup(ctx context.Context, group *model.Group) error {
	row, err := newGroupRow(group)
	if err != nil {
		return err
	}
	row.ID = 0
	err = ds.db.WithContext(ctx).Create(row).Error
	if isDuplicate(err) {
		return store.ErrDuplicateGroup
	} else if err != nil {
		return errors.Wrap(err, "failed to insert group")
	}
	group.ID = row.ID
	return nil
}

// UpdateGroup replaces code, description and settings of a group
func (ds *DataStoreSQL) UpdateGroup(ctx context.Context, group *model.Group) error {
	settings, err := marshalSettings(group.Settings)
	if err != nil {
		return err
	}
	res := ds.db.WithContext(ctx).
		Model(&groupRow{}).
		Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"code":        group.Code,
			"description": group.Description,
			"settings":    settings,
			"updated_ts":  group.UpdatedTs,
		})
	if isDuplicate(res.Error) {
		return store.ErrDuplicateGroup
	} else if res.Error != nil {
		return res.Error
	} else if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGroup deletes a group and detaches its devices
func (ds *DataStoreSQL) DeleteGroup(ctx context.Context, id int64) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&deviceRow{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&groupRow{})
		if res.Error != nil {
			return res.Error
		} else if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

// GetSettings returns the global settings, empty when never saved
func (ds *DataStoreSQL) GetSettings(ctx context.Context) (*model.Settings, error) {
	var row settingsRow
	err := ds.db.WithContext(ctx).Where(&settingsRow{Key: settingsKey}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Settings{}, nil
	} else if err != nil {
		return nil, err
	}
	settings, err := unmarshalSettings(row.Value)
	if err != nil {
		return nil, err
	} else if settings == nil {
		settings = &model.Settings{}
	}
	return settings, nil
}

// SaveSettings replaces the global settings
func (ds *DataStoreSQL) SaveSettings(ctx context.Context, settings *model.Settings) error {
	value, err := marshalSettings(settings)
	if err != nil {
		return err
	}
	now := time.Now()
	row := &settingsRow{
		Key:       settingsKey,
		Value:     value,
		CreatedTs: now,
		UpdatedTs: now,
	}
	return ds.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_ts"}),
	}).Create(row).Error
}

// GetSubscriber returns the notification preferences of a user
func (ds *DataStoreSQL) GetSubscriber(ctx context.Context, id string) (*model.Subscriber, error) {
	var row subscriberRow
	err := ds.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return row.toModel()
}

// UpsertSubscriber creates or replaces the notification preferences of a user
func (ds *DataStoreSQL) UpsertSubscriber(ctx context.Context, subscriber *model.Subscriber) error {
	settings, err := marshalSettings(&subscriber.Settings)
	if err != nil {
		return err
	}
	row := &subscriberRow{
		ID:                   subscriber.ID,
		Email:                subscriber.Email,
		Settings:             settings,
		NotificationsEnabled: subscriber.NotificationsEnabled(),
		UpdatedTs:            subscriber.UpdatedTs,
	}
	return ds.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "settings", "notifications_enabled", "updated_ts",
		}),
	}).Create(row).Error
}

// ListNotificationRecipients returns the emails of the opted-in subscribers
func (ds *DataStoreSQL) ListNotificationRecipients(ctx context.Context) ([]string, error) {
	var emails []string
	err := ds.db.WithContext(ctx).
		Model(&subscriberRow{}).
		Where("notifications_enabled = ? AND email <> ''", true).
		Order("email").
		Pluck("email", &emails).Error
	return emails, err
}
