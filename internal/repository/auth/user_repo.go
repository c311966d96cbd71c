package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lull/internal/model/auth"
)

// UserRepository user store interface
type UserRepository interface {
	Create(ctx context.Context, user *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	UpdateOpenAICredential(ctx context.Context, id string, cred *auth.EncryptedCredential) error
	UpdateHumeCredential(ctx context.Context, id string, cred *auth.EncryptedCredential) error
	UpdateLastLoginAt(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UserRepo user store backed by mongo.
// IDs are UUID strings, no ObjectID conversion needed.
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates the user store
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// Create inserts a user
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID looks a user up by ID
func (r *UserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks a user up by email
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateOpenAICredential replaces the stored OpenAI key.
// A nil cred clears it.
func (r *UserRepo) UpdateOpenAICredential(ctx context.Context, id string, cred *auth.EncryptedCredential) error {
	return r.updateCredential(ctx, id, "openai_api", cred)
}

// UpdateHumeCredential replaces the stored Hume key.
// A nil cred clears it.
func (r *UserRepo) UpdateHumeCredential(ctx context.Context, id string, cred *auth.EncryptedCredential) error {
	return r.updateCredential(ctx, id, "hume_api", cred)
}

func (r *UserRepo) updateCredential(ctx context.Context, id, field string, cred *auth.EncryptedCredential) error {
	var update bson.M
	if cred == nil {
		update = bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{field: cred, "updated_at": time.Now()},
		}
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdateLastLoginAt stamps the last login time
func (r *UserRepo) UpdateLastLoginAt(ctx context.Context, id string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"last_login_at": now,
			"updated_at":    now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete removes a user
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
