package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoicePreset saved narration voice entity.
// HumeVoiceID is the persistent voice registered with the speech provider;
// SampleAudioKey points at the stored sample narration.
type VoicePreset struct {
	ID             string    `bson:"id" json:"id"`                             // preset ID (UUID)
	UserID         string    `bson:"user_id" json:"user_id"`                   // owning user
	Name           string    `bson:"name" json:"name"`                         // preset name (unique provider-side)
	Description    string    `bson:"description" json:"description"`           // free-text voice description
	HumeVoiceID    string    `bson:"hume_voice_id" json:"hume_voice_id"`       // provider voice identifier
	SampleAudioKey string    `bson:"sample_audio_key" json:"sample_audio_key"` // storage key of the sample narration
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (p *VoicePreset) Collection() string {
	return "voice_presets"
}

// EnsureIndexes creates and maintains indexes
func (p *VoicePreset) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
