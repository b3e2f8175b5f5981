package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoClient is the part of *mongo.Client needed to verify a connection.
type mongoClient interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// ConnectMongoDB dials uri and checks the primary answers before handing out
// the database. A client that fails the check is disconnected.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetAppName("coffee-shop").
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := verifyMongo(ctx, client); err != nil {
		return nil, err
	}
	return client.Database(database), nil
}

func verifyMongo(ctx context.Context, client mongoClient) error {
	errPing := client.Ping(ctx, readpref.Primary())
	if errPing == nil {
		return nil
	}

	// ctx may already be done; release the pool on a fresh deadline
	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if errDisconnect := client.Disconnect(disconnectCtx); errDisconnect != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", errors.Join(errPing, errDisconnect))
	}
	return fmt.Errorf("failed to ping MongoDB: %w", errPing)
}
