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
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	dconfig "github.com/labinventory/inventory/config"
)

// testMongoURL points to a replica set, transactions are not supported by
// standalone servers.
var testMongoURL = os.Getenv("TEST_MONGO_URL")

func newTestConfig(dbName string) config.Reader {
	c := viper.New()
	c.Set(dconfig.SettingMongo, testMongoURL)
	c.Set(dconfig.SettingDbName, dbName)
	return c
}

// newTestDataStore returns a data store on a fresh, migrated database
// which is dropped when the test ends.
func newTestDataStore(t *testing.T) *DataStoreMongo {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo tests in short mode.")
	}
	if testMongoURL == "" {
		t.Skip("TEST_MONGO_URL is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := newTestConfig("inventory-test-" + uuid.NewString()[:8])
	client, err := NewClient(ctx, c)
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	ds := NewDataStoreWithClient(client, c)
	if err := Migrate(ctx, ds.dbName, DbVersion, client, true); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = ds.dropDatabase()
		_ = ds.Close()
	})
	return ds
}

func testClient(t *testing.T) *mongo.Client {
	return newTestDataStore(t).client
}
