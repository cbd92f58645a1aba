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

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

type migration1_0_0 struct {
	client *mongo.Client
	db     string
}

// Up creates the uniqueness constraints the reconciliation relies on
// (device mac and token, group code) and the listing indexes.
func (m *migration1_0_0) Up(from migrate.Version) error {
	ctx := context.Background()
	database := m.client.Database(m.db)

	indexes := map[string][]mongo.IndexModel{
		DevicesCollectionName: {
			{
				Keys:    bson.D{{Key: dbFieldMAC, Value: 1}},
				Options: mopts.Index().SetName(dbFieldMAC).SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: dbFieldToken, Value: 1}},
				Options: mopts.Index().SetName(dbFieldToken).SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: dbFieldGroupID, Value: 1}},
				Options: mopts.Index().SetName(dbFieldGroupID),
			},
			{
				Keys:    bson.D{{Key: dbFieldUpdatedTs, Value: 1}},
				Options: mopts.Index().SetName(dbFieldUpdatedTs),
			},
		},
		GroupsCollectionName: {
			{
				Keys:    bson.D{{Key: dbFieldCode, Value: 1}},
				Options: mopts.Index().SetName(dbFieldCode).SetUnique(true),
			},
		},
		AuditLogsCollectionName: {
			{
				Keys: bson.D{
					{Key: dbFieldDeviceID, Value: 1},
					{Key: dbFieldCreatedTs, Value: -1},
				},
				Options: mopts.Index().
					SetName(dbFieldDeviceID + "_" + dbFieldCreatedTs),
			},
		},
		SubscribersCollectionName: {
			{
				Keys:    bson.D{{Key: dbFieldNotify, Value: 1}},
				Options: mopts.Index().SetName(dbFieldNotify),
			},
		},
	}

	for collection, models := range indexes {
		_, err := database.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *migration1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
