package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func Connect(uri string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Mongo connect failed: %v", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		log.Fatalf("Mongo ping failed: %v", err)
	}
	client = c
}

func GetCollection(dbName, collName string) *mongo.Collection {
	return client.Database(dbName).Collection(collName)
}

func Disconnect(ctx context.Context) error {
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the lifecycle engine relies on. The
// partial unique indexes on assignedMemberId and email only cover non-empty
// values, so unapproved profiles and profiles without an email never collide.
func EnsureIndexes(ctx context.Context, dbName string) error {
	profiles := GetCollection(dbName, "profiles")
	_, err := profiles.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "membershipId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "assignedMemberId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"assignedMemberId": bson.M{"$gt": ""}}),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
		},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return err
	}

	confirmations := GetCollection(dbName, "payment_confirmations")
	_, err = confirmations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// At most one pending confirmation per profile; concurrent
			// submissions lose the race at insert, not at the read check.
			Keys: bson.D{{Key: "membershipId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "pending"}),
		},
		{Keys: bson.D{{Key: "membershipId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "submittedAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	admins := GetCollection(dbName, "admin_users")
	_, err = admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	events := GetCollection(dbName, "payment_events")
	_, err = events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "receivedAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	sponsors := GetCollection(dbName, "sponsor_logos")
	_, err = sponsors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slot", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
