package mongodb

import (
	"context"
	"errors"

	"github.com/supakorn-kn/peponi-admin/env"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBConn struct {
	Client *mongo.Client
	opts   *options.ClientOptions
	dbName string
}

func (db *MongoDBConn) Connect(ctx context.Context) error {

	client, err := mongo.Connect(ctx, db.opts)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	db.Client = client

	return nil
}

func (db *MongoDBConn) Disconnect(ctx context.Context) error {

	if db.Client == nil {
		return nil
	}

	return db.Client.Disconnect(ctx)
}

func (db *MongoDBConn) GetDatabase() *mongo.Database {
	return db.Client.Database(db.dbName)
}

func (db *MongoDBConn) GetCollection(collectionName string) *mongo.Collection {
	return db.GetDatabase().Collection(collectionName)
}

func New(config env.MongoDBConfig) (*MongoDBConn, error) {

	if config.URI == "" {
		return nil, errors.New("MongoDB URI is required")
	}

	if config.DB == "" {
		return nil, errors.New("MongoDB database name is required")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(config.URI).
		SetServerAPIOptions(serverAPI).
		SetRegistry(newRegistry())

	if config.Timeout > 0 {
		opts.SetTimeout(config.Timeout)
	}

	return &MongoDBConn{
		opts:   opts,
		dbName: config.DB,
	}, nil
}

func InitConnection(ctx context.Context, config env.MongoDBConfig) (*MongoDBConn, error) {

	mongodbConn, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := mongodbConn.Connect(ctx); err != nil {
		return nil, err
	}

	return mongodbConn, nil
}
