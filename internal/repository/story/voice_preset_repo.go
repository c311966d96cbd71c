package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lull/internal/model/story"
)

// VoicePresetRepository voice preset store interface
type VoicePresetRepository interface {
	Create(ctx context.Context, preset *story.VoicePreset) error
	FindByID(ctx context.Context, id string) (*story.VoicePreset, error)
	FindByUserID(ctx context.Context, userID string) ([]*story.VoicePreset, error)
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

// VoicePresetRepo voice preset store backed by mongo
type VoicePresetRepo struct {
	coll *mongo.Collection
}

// NewVoicePresetRepo creates the voice preset store
func NewVoicePresetRepo(db *mongo.Database) *VoicePresetRepo {
	var p story.VoicePreset
	return &VoicePresetRepo{coll: db.Collection(p.Collection())}
}

// Create inserts a preset
func (r *VoicePresetRepo) Create(ctx context.Context, preset *story.VoicePreset) error {
	now := time.Now()
	preset.CreatedAt = now
	preset.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, preset)
	return err
}

// FindByID looks a preset up by ID
func (r *VoicePresetRepo) FindByID(ctx context.Context, id string) (*story.VoicePreset, error) {
	var p story.VoicePreset
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByUserID lists a user's presets, newest first
func (r *VoicePresetRepo) FindByUserID(ctx context.Context, userID string) ([]*story.VoicePreset, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var presets []*story.VoicePreset
	if err := cur.All(ctx, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

// Update applies a partial update and stamps updated_at
func (r *VoicePresetRepo) Update(ctx context.Context, id string, update bson.M) error {
	if setDoc, ok := update["$set"].(bson.M); ok {
		setDoc["updated_at"] = time.Now()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now()}
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// Delete removes a preset
func (r *VoicePresetRepo) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}
