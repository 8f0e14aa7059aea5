package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smapp/internal/model"
	"smapp/internal/repository"
)

type postRepository struct {
	coll *mongo.Collection
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	post.PrepareInsert()
	_, err := r.coll.InsertOne(ctx, post)
	return translate(err)
}

// Update replaces the whole post document, likes and comments included.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *postRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return err
}
