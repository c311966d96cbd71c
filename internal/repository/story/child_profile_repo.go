package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lull/internal/model/story"
)

// ChildProfileRepository child profile store interface
type ChildProfileRepository interface {
	Create(ctx context.Context, profile *story.ChildProfile) error
	FindByID(ctx context.Context, id string) (*story.ChildProfile, error)
	FindByUserID(ctx context.Context, userID string) ([]*story.ChildProfile, error)
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

// ChildProfileRepo child profile store backed by mongo
type ChildProfileRepo struct {
	coll *mongo.Collection
}

// NewChildProfileRepo creates the child profile store
func NewChildProfileRepo(db *mongo.Database) *ChildProfileRepo {
	var p story.ChildProfile
	return &ChildProfileRepo{coll: db.Collection(p.Collection())}
}

// Create inserts a profile
func (r *ChildProfileRepo) Create(ctx context.Context, profile *story.ChildProfile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, profile)
	return err
}

// FindByID looks a profile up by ID
func (r *ChildProfileRepo) FindByID(ctx context.Context, id string) (*story.ChildProfile, error) {
	var p story.ChildProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByUserID lists a user's profiles, newest first
func (r *ChildProfileRepo) FindByUserID(ctx context.Context, userID string) ([]*story.ChildProfile, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []*story.ChildProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update applies a partial update and stamps updated_at
func (r *ChildProfileRepo) Update(ctx context.Context, id string, update bson.M) error {
	if setDoc, ok := update["$set"].(bson.M); ok {
		setDoc["updated_at"] = time.Now()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now()}
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// Delete removes a profile
func (r *ChildProfileRepo) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}
