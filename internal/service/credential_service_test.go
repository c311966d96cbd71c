package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"lull/internal/model/auth"
	"lull/internal/pkg/id"
	"lull/internal/pkg/secretbox"
)

func newCredentialService(users *fakeUserRepo) *CredentialService {
	box, err := secretbox.New("test-encryption-secret")
	So(err, ShouldBeNil)
	return NewCredentialService(users, box)
}

func TestCredentials(t *testing.T) {
	ctx := context.Background()

	seedUser := func(users *fakeUserRepo) string {
		user := &auth.User{ID: id.New(), Email: "parent@example.com"}
		_ = users.Create(ctx, user)
		return user.ID
	}

	Convey("a stored key resolves back to its plaintext", t, func() {
		users := newFakeUserRepo()
		svc := newCredentialService(users)
		userID := seedUser(users)

		So(svc.Store(ctx, userID, ProviderOpenAI, "sk-secret-key"), ShouldBeNil)

		key, err := svc.Resolve(ctx, userID, ProviderOpenAI)
		So(err, ShouldBeNil)
		So(key, ShouldEqual, "sk-secret-key")

		Convey("the plaintext never reaches the store", func() {
			user, _ := users.FindByID(ctx, userID)
			So(user.OpenAIAPI, ShouldNotBeNil)
			So(string(user.OpenAIAPI.Ciphertext), ShouldNotContainSubstring, "sk-secret-key")
		})
	})

	Convey("providers are independent", t, func() {
		users := newFakeUserRepo()
		svc := newCredentialService(users)
		userID := seedUser(users)

		So(svc.Store(ctx, userID, ProviderHume, "hume-key"), ShouldBeNil)

		_, err := svc.Resolve(ctx, userID, ProviderOpenAI)
		So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)

		status, err := svc.Status(ctx, userID)
		So(err, ShouldBeNil)
		So(status.HasHumeKey, ShouldBeTrue)
		So(status.HasOpenAIKey, ShouldBeFalse)
	})

	Convey("an empty key clears the stored credential", t, func() {
		users := newFakeUserRepo()
		svc := newCredentialService(users)
		userID := seedUser(users)

		So(svc.Store(ctx, userID, ProviderOpenAI, "sk-secret-key"), ShouldBeNil)
		So(svc.Store(ctx, userID, ProviderOpenAI, ""), ShouldBeNil)

		_, err := svc.Resolve(ctx, userID, ProviderOpenAI)
		So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
	})

	Convey("a key encrypted under a rotated secret fails as invalid", t, func() {
		users := newFakeUserRepo()
		userID := seedUser(users)

		oldBox, err := secretbox.New("old-secret")
		So(err, ShouldBeNil)
		So(NewCredentialService(users, oldBox).Store(ctx, userID, ProviderOpenAI, "sk-secret-key"), ShouldBeNil)

		newBox, err := secretbox.New("new-secret")
		So(err, ShouldBeNil)
		_, err = NewCredentialService(users, newBox).Resolve(ctx, userID, ProviderOpenAI)
		So(errors.Is(err, ErrInvalidCredential), ShouldBeTrue)
	})

	Convey("operations on an unknown user report user not found", t, func() {
		users := newFakeUserRepo()
		svc := newCredentialService(users)

		So(errors.Is(svc.Store(ctx, "ghost", ProviderOpenAI, "sk"), ErrUserNotFound), ShouldBeTrue)

		_, err := svc.Resolve(ctx, "ghost", ProviderOpenAI)
		So(errors.Is(err, ErrUserNotFound), ShouldBeTrue)

		_, err = svc.Status(ctx, "ghost")
		So(errors.Is(err, ErrUserNotFound), ShouldBeTrue)
	})
}
