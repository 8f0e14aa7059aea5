package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smapp/internal/model"
	"smapp/internal/repository"
)

type profileRepository struct {
	coll *mongo.Collection
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	profile.PrepareInsert()
	_, err := r.coll.InsertOne(ctx, profile)
	return translate(err)
}

// Update replaces the whole profile document.
func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return r.findOne(ctx, bson.M{"user": userID})
}

func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *profileRepository) findOne(ctx context.Context, filter bson.M) (*model.Profile, error) {
	var profile model.Profile
	if err := r.coll.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	profiles := []model.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}
