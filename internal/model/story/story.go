package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Story generated bedtime story entity.
// ChildName and VoiceName are denormalized snapshots taken at creation time,
// so later edits or deletions of the referenced profile/preset do not change
// how an existing story is displayed.
type Story struct {
	ID               string      `bson:"id" json:"id"`                                             // story ID (UUID)
	UserID           string      `bson:"user_id" json:"user_id"`                                   // owning user
	ChildID          string      `bson:"child_id,omitempty" json:"child_id,omitempty"`             // referenced child profile (optional)
	ChildName        string      `bson:"child_name" json:"child_name"`                             // denormalized child name
	Title            string      `bson:"title" json:"title"`                                       // story title
	Content          string      `bson:"content" json:"content"`                                   // full story text
	VoicePresetID    string      `bson:"voice_preset_id,omitempty" json:"voice_preset_id,omitempty"` // referenced voice preset (optional)
	VoiceName        string      `bson:"voice_name" json:"voice_name"`                             // denormalized voice name
	VoiceDescription string      `bson:"voice_description,omitempty" json:"voice_description,omitempty"` // ad-hoc voice description
	AudioKey         string      `bson:"audio_key,omitempty" json:"audio_key,omitempty"`           // storage key of narration audio
	AudioStatus      AudioStatus `bson:"audio_status" json:"audio_status"`                         // pending, generating, ready, error
	IsFavorite       bool        `bson:"is_favorite" json:"is_favorite"`
	CreatedAt        time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (s *Story) Collection() string {
	return "stories"
}

// EnsureIndexes creates and maintains indexes
func (s *Story) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_favorite", Value: 1}},
			Options: options.Index().SetName("idx_user_favorite"),
		},
		{
			Keys:    bson.D{{Key: "child_id", Value: 1}},
			Options: options.Index().SetName("idx_child_id"),
		},
		{
			Keys:    bson.D{{Key: "audio_status", Value: 1}},
			Options: options.Index().SetName("idx_audio_status"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
