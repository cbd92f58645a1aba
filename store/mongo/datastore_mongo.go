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

package mongo

import (
	"context"
	"crypto/tls"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/labinventory/inventory/config"
	"github.com/labinventory/inventory/model"
	"github.com/labinventory/inventory/store"
)

const (
	// DevicesCollectionName refers to the name of the collection of stored devices
	DevicesCollectionName = "devices"

	// GroupsCollectionName refers to the name of the collection of laboratories
	GroupsCollectionName = "laboratories"

	// AuditLogsCollectionName refers to the name of the collection of
	// the device audit logs
	AuditLogsCollectionName = "device_logs"

	// SettingsCollectionName refers to the name of the collection holding
	// the global settings document
	SettingsCollectionName = "settings"

	// SubscribersCollectionName refers to the name of the collection of
	// notification subscribers
	SubscribersCollectionName = "subscribers"

	// CountersCollectionName refers to the name of the collection of the
	// sequences used to assign numeric ids
	CountersCollectionName = "counters"
)

const (
	dbFieldID           = "_id"
	dbFieldMAC          = "mac"
	dbFieldToken        = "token"
	dbFieldName         = "name"
	dbFieldStatus       = "status"
	dbFieldInfo         = "info"
	dbFieldGroupID      = "group_id"
	dbFieldGroup        = "group"
	dbFieldRootDiskFree = "root_disk_free"
	dbFieldUpdatedTs    = "updated_ts"
	dbFieldCreatedTs    = "created_ts"
	dbFieldDeviceID     = "device_id"
	dbFieldCode         = "code"
	dbFieldDescription  = "description"
	dbFieldSettings     = "settings"
	dbFieldEmail        = "email"
	dbFieldNotify       = "notifications_enabled"
	dbFieldSeq          = "seq"

	settingsDocumentID = "settings"
)

// SetupDataStore returns the mongo data store and optionally runs migrations
func SetupDataStore(c config.Reader, automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	dataStore := NewDataStoreWithClient(dbClient, c)
	err = Migrate(ctx, dataStore.dbName, DbVersion, dbClient, automigrate)
	if err != nil {
		disconnectClient(ctx, dbClient)
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	return dataStore, nil
}

func disconnectClient(parentCtx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(parentCtx, 1*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewClient returns a mongo client
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {

	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Acknowledge writes after they reach the journal; the device and
	// audit log pair must not be lost once reported as accepted.
	clientOptions.SetWriteConcern(writeconcern.New(
		writeconcern.W(1),
		writeconcern.J(true),
	))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the data storage service
type DataStoreMongo struct {
	// client holds the reference to the client used to communicate with the
	// mongodb server.
	client *mongo.Client
	// dbName contains the name of the inventory database.
	dbName string
}

// NewDataStoreWithClient initializes a DataStore object
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	dbName := c.GetString(dconfig.SettingDbName)
	if dbName == "" {
		dbName = DbName
	}

	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

func (db *DataStoreMongo) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// nextID increments and returns the sequence of the named collection.
func (db *DataStoreMongo) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := db.collection(CountersCollectionName).FindOneAndUpdate(ctx,
		bson.M{dbFieldID: name},
		bson.M{"$inc": bson.M{dbFieldSeq: int64(1)}},
		mopts.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(mopts.After),
	).Decode(&counter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to allocate id")
	}
	return counter.Seq, nil
}

func (db *DataStoreMongo) withTransaction(
	ctx context.Context,
	fn func(sessCtx mongo.SessionContext) error,
) error {
	session, err := db.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

// devicePipeline joins the devices matched by filter with their group.
func devicePipeline(filter bson.M, stages ...bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
	}
	pipeline = append(pipeline, stages...)
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         GroupsCollectionName,
			"localField":   dbFieldGroupID,
			"foreignField": dbFieldID,
			"as":           dbFieldGroup,
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$" + dbFieldGroup,
			"preserveNullAndEmptyArrays": true,
		}}},
	)
}

func (db *DataStoreMongo) findDevices(ctx context.Context, pipeline mongo.Pipeline) ([]model.Device, error) {
	cur, err := db.collection(DevicesCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	devices := []model.Device{}
	if err := cur.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (db *DataStoreMongo) findDevice(ctx context.Context, filter bson.M) (*model.Device, error) {
	devices, err := db.findDevices(ctx, devicePipeline(filter,
		bson.D{{Key: "$limit", Value: 1}},
	))
	if err != nil {
		return nil, err
	} else if len(devices) == 0 {
		return nil, nil
	}
	return &devices[0], nil
}

// GetDevice returns a device and its group
func (db *DataStoreMongo) GetDevice(ctx context.Context, id int64) (*model.Device, error) {
	return db.findDevice(ctx, bson.M{dbFieldID: id})
}

// GetDeviceByToken returns the device owning the token, with its group
func (db *DataStoreMongo) GetDeviceByToken(ctx context.Context, token string) (*model.Device, error) {
	return db.findDevice(ctx, bson.M{dbFieldToken: token})
}

// GetDeviceByMAC returns the device registered with the MAC address
func (db *DataStoreMongo) GetDeviceByMAC(ctx context.Context, mac string) (*model.Device, error) {
	return db.findDevice(ctx, bson.M{dbFieldMAC: mac})
}

// InsertDevice inserts a new device and sets its ID
func (db *DataStoreMongo) InsertDevice(ctx context.Context, device *model.Device) error {
	id, err := db.nextID(ctx, DevicesCollectionName)
	if err != nil {
		return err
	}
	doc := *device
	doc.ID = id
	doc.Group = nil
	doc.LastAuditLog = nil
	_, err = db.collection(DevicesCollectionName).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicateDevice
	} else if err != nil {
		return errors.Wrap(err, "failed to insert device")
	}
	device.ID = id
	return nil
}

// UpdateDeviceInventory applies an accepted report and, when given, inserts
// the audit log entry in the same transaction.
func (db *DataStoreMongo) UpdateDeviceInventory(
	ctx context.Context,
	update *model.DeviceInventoryUpdate,
	auditLog *model.AuditLogEntry,
) error {
	var logID int64
	if auditLog != nil {
		var err error
		if logID, err = db.nextID(ctx, AuditLogsCollectionName); err != nil {
			return err
		}
	}
	set := bson.M{
		dbFieldName:         update.Name,
		dbFieldInfo:         update.Info,
		dbFieldRootDiskFree: update.RootDiskFree,
		dbFieldUpdatedTs:    update.UpdatedTs,
	}
	if update.GroupID != nil {
		set[dbFieldGroupID] = *update.GroupID
	}
	err := db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		res, err := db.collection(DevicesCollectionName).UpdateOne(sessCtx,
			bson.M{dbFieldID: update.ID},
			bson.M{"$set": set},
		)
		if err != nil {
			return errors.Wrap(err, "failed to update device")
		} else if res.MatchedCount == 0 {
			return store.ErrNotFound
		}
		if auditLog == nil {
			return nil
		}
		entry := model.AuditLogEntry{
			ID:        logID,
			DeviceID:  update.ID,
			OldInfo:   auditLog.OldInfo,
			CreatedTs: auditLog.CreatedTs,
		}
		_, err = db.collection(AuditLogsCollectionName).InsertOne(sessCtx, entry)
		return errors.Wrap(err, "failed to insert audit log")
	})
	if err != nil {
		return err
	}
	if auditLog != nil {
		auditLog.ID = logID
		auditLog.DeviceID = update.ID
	}
	return nil
}

// UpdateDeviceStatus sets the approval status of a device
func (db *DataStoreMongo) UpdateDeviceStatus(ctx context.Context, id int64, status model.DeviceStatus) error {
	res, err := db.collection(DevicesCollectionName).UpdateOne(ctx,
		bson.M{dbFieldID: id},
		bson.M{"$set": bson.M{dbFieldStatus: status}},
	)
	if err != nil {
		return err
	} else if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetDevicesGroup links the devices to the group, or unlinks them when
// groupID is nil.
func (db *DataStoreMongo) SetDevicesGroup(ctx context.Context, ids []int64, groupID *int64) error {
	if len(ids) == 0 {
		return nil
	}
	update := bson.M{"$unset": bson.M{dbFieldGroupID: ""}}
	if groupID != nil {
		update = bson.M{"$set": bson.M{dbFieldGroupID: *groupID}}
	}
	res, err := db.collection(DevicesCollectionName).UpdateMany(ctx,
		bson.M{dbFieldID: bson.M{"$in": ids}},
		update,
	)
	if err != nil {
		return err
	} else if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteDevice deletes a device together with its audit logs
func (db *DataStoreMongo) DeleteDevice(ctx context.Context, id int64) error {
	return db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		_, err := db.collection(AuditLogsCollectionName).DeleteMany(sessCtx,
			bson.M{dbFieldDeviceID: id})
		if err != nil {
			return err
		}
		res, err := db.collection(DevicesCollectionName).DeleteOne(sessCtx,
			bson.M{dbFieldID: id})
		if err != nil {
			return err
		} else if res.DeletedCount == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func deviceFilter(filter model.DeviceFilter) bson.M {
	query := bson.M{}
	conditions := bson.A{}
	if filter.Query != "" {
		pattern := "(?i)" + regexp.QuoteMeta(filter.Query)
		or := bson.A{
			bson.M{dbFieldMAC: bson.M{"$regex": pattern}},
			bson.M{dbFieldName: bson.M{"$regex": pattern}},
		}
		if id, err := strconv.ParseInt(filter.Query, 10, 64); err == nil {
			or = append(or, bson.M{dbFieldID: id})
		}
		conditions = append(conditions, bson.M{"$or": or})
	}
	updated := bson.M{}
	if filter.UpdatedAfter != nil {
		updated["$gte"] = *filter.UpdatedAfter
	}
	if filter.InactiveBefore != nil {
		updated["$lte"] = *filter.InactiveBefore
	}
	if len(updated) > 0 {
		query[dbFieldUpdatedTs] = updated
	}
	if filter.FreeBelow != nil {
		query[dbFieldRootDiskFree] = bson.M{"$lt": *filter.FreeBelow}
	}
	if filter.Status != "" {
		query[dbFieldStatus] = filter.Status
	}
	if filter.GroupID != nil {
		query[dbFieldGroupID] = *filter.GroupID
	}
	if len(conditions) > 0 {
		query["$and"] = conditions
	}
	return query
}

// ListDevices returns a page of the devices matching the filter and the
// total number of matches.
func (db *DataStoreMongo) ListDevices(
	ctx context.Context,
	filter model.DeviceFilter,
) ([]model.Device, int, error) {
	query := deviceFilter(filter)
	total, err := db.collection(DevicesCollectionName).CountDocuments(ctx, query)
	if err != nil {
		return nil, -1, errors.Wrap(err, "failed to count devices")
	}
	stages := []bson.D{{{Key: "$sort", Value: bson.M{dbFieldID: 1}}}}
	if filter.Skip > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: int64(filter.Skip)}})
	}
	if filter.Limit > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: int64(filter.Limit)}})
	}
	devices, err := db.findDevices(ctx, devicePipeline(query, stages...))
	if err != nil {
		return nil, -1, errors.Wrap(err, "failed to list devices")
	}
	return devices, int(total), nil
}

// CountDevices computes the dashboard counters, skipping rejected devices.
func (db *DataStoreMongo) CountDevices(
	ctx context.Context,
	filter model.DeviceFilter,
) (*model.DeviceCounters, error) {
	coll := db.collection(DevicesCollectionName)
	count := func(f model.DeviceFilter) (int64, error) {
		query := deviceFilter(f)
		query[dbFieldStatus] = bson.M{"$ne": model.DeviceStatusRejected}
		return coll.CountDocuments(ctx, query)
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
func (db *DataStoreMongo) GetAuditLogs(ctx context.Context, deviceID int64, limit int) ([]model.AuditLogEntry, error) {
	opts := mopts.Find().SetSort(bson.D{
		{Key: dbFieldCreatedTs, Value: -1},
		{Key: dbFieldID, Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := db.collection(AuditLogsCollectionName).Find(ctx,
		bson.M{dbFieldDeviceID: deviceID}, opts)
	if err != nil {
		return nil, err
	}
	logs := []model.AuditLogEntry{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (db *DataStoreMongo) findGroup(ctx context.Context, filter bson.M) (*model.Group, error) {
	group := &model.Group{}
	err := db.collection(GroupsCollectionName).FindOne(ctx, filter).Decode(group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup returns a group by id
func (db *DataStoreMongo) GetGroup(ctx context.Context, id int64) (*model.Group, error) {
	return db.findGroup(ctx, bson.M{dbFieldID: id})
}

// GetGroupByCode returns a group by its code
func (db *DataStoreMongo) GetGroupByCode(ctx context.Context, code string) (*model.Group, error) {
	return db.findGroup(ctx, bson.M{dbFieldCode: code})
}

// ListGroups returns every group ordered by code
func (db *DataStoreMongo) ListGroups(ctx context.Context) ([]model.Group, error) {
	cur, err := db.collection(GroupsCollectionName).Find(ctx, bson.M{},
		mopts.Find().SetSort(bson.D{{Key: dbFieldCode, Value: 1}}))
	if err != nil {
		return nil, err
	}
	groups := []model.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// InsertGroup inserts a group and sets its ID
func (db *DataStoreMongo) InsertGroup(ctx context.Context, group *model.Group) error {
	id, err := db.nextID(ctx, GroupsCollectionName)
	if err != nil {
		return err
	}
	doc := *group
	doc.ID = id
	doc.Devices = nil
	_, err = db.collection(GroupsCollectionName).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicateGroup
	} else if err != nil {
		return errors.Wrap(err, "failed to insert group")
	}
	group.ID = id
	return nil
}

// UpdateGroup replaces code, description and settings of a group
func (db *DataStoreMongo) UpdateGroup(ctx context.Context, group *model.Group) error {
	res, err := db.collection(GroupsCollectionName).UpdateOne(ctx,
		bson.M{dbFieldID: group.ID},
		bson.M{"$set": bson.M{
			dbFieldCode:        group.Code,
			dbFieldDescription: group.Description,
			dbFieldSettings:    group.Settings,
			dbFieldUpdatedTs:   group.UpdatedTs,
		}},
	)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicateGroup
	} else if err != nil {
		return err
	} else if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGroup deletes a group and detaches its devices
func (db *DataStoreMongo) DeleteGroup(ctx context.Context, id int64) error {
	return db.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		_, err := db.collection(DevicesCollectionName).UpdateMany(sessCtx,
			bson.M{dbFieldGroupID: id},
			bson.M{"$unset": bson.M{dbFieldGroupID: ""}},
		)
		if err != nil {
			return err
		}
		res, err := db.collection(GroupsCollectionName).DeleteOne(sessCtx,
			bson.M{dbFieldID: id})
		if err != nil {
			return err
		} else if res.DeletedCount == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

type settingsDocument struct {
	ID             string `bson:"_id"`
	model.Settings `bson:",inline"`
}

// GetSettings returns the global settings, empty when never saved
func (db *DataStoreMongo) GetSettings(ctx context.Context) (*model.Settings, error) {
	var doc settingsDocument
	err := db.collection(SettingsCollectionName).
		FindOne(ctx, bson.M{dbFieldID: settingsDocumentID}).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return &model.Settings{}, nil
	} else if err != nil {
		return nil, err
	}
	return &doc.Settings, nil
}

// SaveSettings replaces the global settings
func (db *DataStoreMongo) SaveSettings(ctx context.Context, settings *model.Settings) error {
	doc := settingsDocument{ID: settingsDocumentID}
	if settings != nil {
		doc.Settings = *settings
	}
	_, err := db.collection(SettingsCollectionName).ReplaceOne(ctx,
		bson.M{dbFieldID: settingsDocumentID},
		doc,
		mopts.Replace().SetUpsert(true),
	)
	return err
}

type subscriberDocument struct {
	model.Subscriber     `bson:",inline"`
	NotificationsEnabled bool `bson:"notifications_enabled"`
}

// GetSubscriber returns the notification preferences of a user
func (db *DataStoreMongo) GetSubscriber(ctx context.Context, id string) (*model.Subscriber, error) {
	var doc subscriberDocument
	err := db.collection(SubscribersCollectionName).
		FindOne(ctx, bson.M{dbFieldID: id}).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &doc.Subscriber, nil
}

// UpsertSubscriber creates or replaces the notification preferences of a user
func (db *DataStoreMongo) UpsertSubscriber(ctx context.Context, subscriber *model.Subscriber) error {
	doc := subscriberDocument{
		Subscriber:           *subscriber,
		NotificationsEnabled: subscriber.NotificationsEnabled(),
	}
	_, err := db.collection(SubscribersCollectionName).ReplaceOne(ctx,
		bson.M{dbFieldID: subscriber.ID},
		doc,
		mopts.Replace().SetUpsert(true),
	)
	return err
}

// ListNotificationRecipients returns the emails of the opted-in subscribers
func (db *DataStoreMongo) ListNotificationRecipients(ctx context.Context) ([]string, error) {
	cur, err := db.collection(SubscribersCollectionName).Find(ctx,
		bson.M{dbFieldNotify: true},
		mopts.Find().
			SetProjection(bson.M{dbFieldEmail: 1}).
			SetSort(bson.D{{Key: dbFieldEmail, Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Email string `bson:"email"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(docs))
	for _, doc := range docs {
		emails = append(emails, doc.Email)
	}
	return emails, nil
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	return disconnectClient(context.Background(), db.client)
}

func (db *DataStoreMongo) dropDatabase() error {
	ctx := context.Background()
	err := db.client.Database(db.dbName).Drop(ctx)
	return err
}
