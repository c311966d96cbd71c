package auth

import (
	"time"
)

// EncryptedCredential is a provider API key encrypted at rest.
// Ciphertext and IV come from the AES-GCM secretbox; the plaintext key
// never touches the database.
type EncryptedCredential struct {
	Ciphertext []byte `bson:"ciphertext" json:"-"`
	IV         []byte `bson:"iv" json:"-"`
}

// User account entity.
// IDs are UUID strings, which avoids ObjectID conversions everywhere.
type User struct {
	ID          string               `bson:"_id,omitempty" json:"id"`
	Email       string               `bson:"email" json:"email"`           // unique
	Password    string               `bson:"password" json:"-"`            // bcrypt hash, never returned
	OpenAIAPI   *EncryptedCredential `bson:"openai_api,omitempty" json:"-"` // encrypted OpenAI key
	HumeAPI     *EncryptedCredential `bson:"hume_api,omitempty" json:"-"`   // encrypted Hume key
	LastLoginAt *time.Time           `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
