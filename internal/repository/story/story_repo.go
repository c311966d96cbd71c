package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lull/internal/model/story"
)

// StoryRepository story store interface
type StoryRepository interface {
	Create(ctx context.Context, s *story.Story) error
	FindByID(ctx context.Context, id string) (*story.Story, error)
	FindByUserID(ctx context.Context, userID string) ([]*story.Story, error)
	FindFavoritesByUserID(ctx context.Context, userID string) ([]*story.Story, error)
	FindByChildID(ctx context.Context, userID, childID string) ([]*story.Story, error)
	FindTitlesByUserID(ctx context.Context, userID string) ([]string, error)
	TransitionAudioStatus(ctx context.Context, id string, from []story.AudioStatus, to story.AudioStatus) (bool, error)
	UpdateAudioReady(ctx context.Context, id, audioKey string) error
	UpdateAudioStatus(ctx context.Context, id string, status story.AudioStatus) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	Delete(ctx context.Context, id string) error
}

// StoryRepo story store backed by mongo
type StoryRepo struct {
	coll *mongo.Collection
}

// NewStoryRepo creates the story store
func NewStoryRepo(db *mongo.Database) *StoryRepo {
	var s story.Story
	return &StoryRepo{coll: db.Collection(s.Collection())}
}

// Create inserts a story.
// New stories start with pending audio unless the caller says otherwise.
func (r *StoryRepo) Create(ctx context.Context, s *story.Story) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.AudioStatus == "" {
		s.AudioStatus = story.AudioStatusPending
	}

	_, err := r.coll.InsertOne(ctx, s)
	return err
}

// FindByID looks a story up by ID
func (r *StoryRepo) FindByID(ctx context.Context, id string) (*story.Story, error) {
	var s story.Story
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByUserID lists a user's stories, newest first
func (r *StoryRepo) FindByUserID(ctx context.Context, userID string) ([]*story.Story, error) {
	return r.findSorted(ctx, bson.M{"user_id": userID})
}

// FindFavoritesByUserID lists a user's favorite stories, newest first
func (r *StoryRepo) FindFavoritesByUserID(ctx context.Context, userID string) ([]*story.Story, error) {
	return r.findSorted(ctx, bson.M{"user_id": userID, "is_favorite": true})
}

// FindByChildID lists the stories generated for one child, newest first
func (r *StoryRepo) FindByChildID(ctx context.Context, userID, childID string) ([]*story.Story, error) {
	return r.findSorted(ctx, bson.M{"user_id": userID, "child_id": childID})
}

func (r *StoryRepo) findSorted(ctx context.Context, filter bson.M) ([]*story.Story, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var stories []*story.Story
	if err := cur.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// FindTitlesByUserID returns just the titles of a user's stories,
// used to steer idea generation away from titles already in use.
func (r *StoryRepo) FindTitlesByUserID(ctx context.Context, userID string) ([]string, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetProjection(bson.M{"title": 1}).SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var titles []string
	for cur.Next(ctx) {
		var doc struct {
			Title string `bson:"title"`
		}
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		if doc.Title != "" {
			titles = append(titles, doc.Title)
		}
	}
	return titles, cur.Err()
}

// TransitionAudioStatus moves audio_status from one of the given states to
// another with a single conditional update. It reports whether this caller
// won the transition; a false result with a nil error means the story was
// not in any of the from states, typically because a concurrent request got
// there first.
func (r *StoryRepo) TransitionAudioStatus(ctx context.Context, id string, from []story.AudioStatus, to story.AudioStatus) (bool, error) {
	filter := bson.M{
		"id":           id,
		"audio_status": bson.M{"$in": from},
	}
	update := bson.M{
		"$set": bson.M{
			"audio_status": to,
			"updated_at":   time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// UpdateAudioReady stores the audio key and marks the audio ready in one
// update, so a reader never sees ready without a key.
func (r *StoryRepo) UpdateAudioReady(ctx context.Context, id, audioKey string) error {
	update := bson.M{
		"$set": bson.M{
			"audio_key":    audioKey,
			"audio_status": story.AudioStatusReady,
			"updated_at":   time.Now(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// UpdateAudioStatus sets audio_status unconditionally
func (r *StoryRepo) UpdateAudioStatus(ctx context.Context, id string, status story.AudioStatus) error {
	update := bson.M{
		"$set": bson.M{
			"audio_status": status,
			"updated_at":   time.Now(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// SetFavorite sets the favorite flag
func (r *StoryRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	update := bson.M{
		"$set": bson.M{
			"is_favorite": favorite,
			"updated_at":  time.Now(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// Delete removes a story
func (r *StoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}
