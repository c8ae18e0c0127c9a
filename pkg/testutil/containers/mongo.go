//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	platformmongo "roster/internal/platform/mongo"
)

// MongoContainer wraps a testcontainers MongoDB instance with indexes created.
type MongoContainer struct {
	Container testcontainers.Container
	URI       string
	Client    *mongo.Client
	DB        *mongo.Database
}

// NewMongoContainer starts MongoDB, connects and ensures the roster indexes.
func NewMongoContainer(t *testing.T) *MongoContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get mongo connection string: %v", err)
	}

	client, err := platformmongo.Connect(ctx, uri)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	db := client.Database("roster_test")
	if err := platformmongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		_ = container.Terminate(ctx)
		t.Fatalf("failed to create mongo indexes: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
		_ = container.Terminate(context.Background())
	})

	return &MongoContainer{Container: container, URI: uri, Client: client, DB: db}
}

// Clear removes every document while keeping the indexes.
func (m *MongoContainer) Clear(ctx context.Context) error {
	for _, name := range []string{platformmongo.EmployeesCollection, platformmongo.AttendanceCollection} {
		if _, err := m.DB.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return err
		}
	}
	return nil
}
