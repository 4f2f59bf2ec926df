// Package store backs the lifecycle engine with MongoDB. Uniqueness of
// membershipId, non-empty email, and non-empty assignedMemberId is carried by
// the indexes created at startup; duplicate-key violations surface as
// engine.ErrConflict so the engine can redraw member IDs.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/models"
)

type MongoStore struct {
	Profiles      *mongo.Collection
	Confirmations *mongo.Collection
	Events        *mongo.Collection
}

func NewMongoStore(profiles, confirmations, events *mongo.Collection) *MongoStore {
	return &MongoStore{Profiles: profiles, Confirmations: confirmations, Events: events}
}

func (s *MongoStore) Get(ctx context.Context, membershipID string) (*models.Profile, error) {
	var p models.Profile
	err := s.Profiles.FindOne(ctx, bson.M{"membershipId": membershipID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: profile not found", engine.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoStore) Put(ctx context.Context, p *models.Profile) error {
	_, err := s.Profiles.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: duplicate profile key", engine.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *MongoStore) UpdateIfMatch(ctx context.Context, membershipID string, expected, set map[string]any) (bool, error) {
	filter := bson.M{"membershipId": membershipID}
	for k, v := range expected {
		filter[k] = v
	}
	res, err := s.Profiles.UpdateOne(ctx, filter, bson.M{"$set": bson.M(set)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("%w: unique index violation", engine.ErrConflict)
		}
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *MongoStore) Delete(ctx context.Context, membershipID string) (bool, error) {
	res, err := s.Profiles.DeleteOne(ctx, bson.M{"membershipId": membershipID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) FindByAssignedMemberID(ctx context.Context, code string) (*models.Profile, error) {
	var p models.Profile
	err := s.Profiles.FindOne(ctx, bson.M{"assignedMemberId": code}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no profile holds member id %s", engine.ErrNotFound, code)
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	err := s.Profiles.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no profile with that email", engine.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// AppendReference pushes the reference only while no entry with the same
// membershipId exists, so the duplicate check and the append are one atomic
// document update.
func (s *MongoStore) AppendReference(ctx context.Context, membershipID string, ref models.Reference) error {
	res, err := s.Profiles.UpdateOne(ctx,
		bson.M{
			"membershipId":            membershipID,
			"references.membershipId": bson.M{"$ne": ref.MembershipID},
		},
		bson.M{
			"$push": bson.M{"references": ref},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// The caller has already verified the profile exists, so a miss
		// means the reference is already present.
		return fmt.Errorf("%w: reference already exists", engine.ErrConflict)
	}
	return nil
}

func (s *MongoStore) PullReference(ctx context.Context, membershipID, refMembershipID string) error {
	res, err := s.Profiles.UpdateOne(ctx,
		bson.M{"membershipId": membershipID},
		bson.M{
			"$pull": bson.M{"references": bson.M{"membershipId": refMembershipID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: profile not found", engine.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) QueryProfiles(ctx context.Context, search string, limit, skip int64) ([]models.Profile, error) {
	query := bson.M{}
	if search != "" {
		query = bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"membershipId": bson.M{"$regex": search, "$options": "i"}},
		}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.Profiles.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *MongoStore) AppendConfirmation(ctx context.Context, c *models.PaymentConfirmation) error {
	c.ID = primitive.NewObjectID()
	_, err := s.Confirmations.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		// Partial unique index: one pending confirmation per profile.
		return fmt.Errorf("%w: a pending confirmation already exists", engine.ErrConflict)
	}
	return err
}

func (s *MongoStore) FindLatestPendingConfirmation(ctx context.Context, membershipID string) (*models.PaymentConfirmation, error) {
	var c models.PaymentConfirmation
	err := s.Confirmations.FindOne(ctx,
		bson.M{"membershipId": membershipID, "status": models.ConfirmationPending},
		options.FindOne().SetSort(bson.D{{Key: "submittedAt", Value: -1}}),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no pending confirmation", engine.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (s *MongoStore) UpdateConfirmation(ctx context.Context, id primitive.ObjectID, set map[string]any) error {
	res, err := s.Confirmations.UpdateByID(ctx, id, bson.M{"$set": bson.M(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: confirmation not found", engine.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) AppendPaymentEvent(ctx context.Context, ev *models.PaymentEvent) error {
	ev.ID = primitive.NewObjectID()
	_, err := s.Events.InsertOne(ctx, ev)
	return err
}
