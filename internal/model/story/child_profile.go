package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChildProfile saved child profile entity.
// Deleting a profile does not cascade to stories; they keep the denormalized
// child name captured when they were created.
type ChildProfile struct {
	ID        string    `bson:"id" json:"id"`               // profile ID (UUID)
	UserID    string    `bson:"user_id" json:"user_id"`     // owning user
	Name      string    `bson:"name" json:"name"`           // child's name
	Age       int       `bson:"age" json:"age"`             // child's age
	Interests string    `bson:"interests" json:"interests"` // free-text interests
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name
func (p *ChildProfile) Collection() string {
	return "child_profiles"
}

// EnsureIndexes creates and maintains indexes
func (p *ChildProfile) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
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
