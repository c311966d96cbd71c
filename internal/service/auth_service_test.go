package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"lull/internal/model/auth"
	"lull/internal/pkg/id"
	"lull/internal/pkg/password"
)

func newAuthService(users *fakeUserRepo, tokens *fakeRefreshTokenRepo) *AuthService {
	return NewAuthService(users, tokens, "test-secret", time.Hour, 7*24*time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	Convey("Register creates an account keyed by email", t, func() {
		users := newFakeUserRepo()
		svc := newAuthService(users, newFakeRefreshTokenRepo())

		result, err := svc.Register(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)
		So(result.Email, ShouldEqual, "parent@example.com")
		So(result.UserID, ShouldNotBeEmpty)

		Convey("the stored password is a hash, not the plaintext", func() {
			user, err := users.FindByID(ctx, result.UserID)
			So(err, ShouldBeNil)
			So(user.Password, ShouldNotEqual, "hunter22!")
			So(password.Verify("hunter22!", user.Password), ShouldBeTrue)
		})
	})

	Convey("a second registration with the same email is rejected", t, func() {
		users := newFakeUserRepo()
		svc := newAuthService(users, newFakeRefreshTokenRepo())

		_, err := svc.Register(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)

		_, err = svc.Register(ctx, "parent@example.com", "different-pass")
		So(errors.Is(err, ErrUserAlreadyExists), ShouldBeTrue)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(svc *AuthService, email, pwd string) string {
		result, err := svc.Register(ctx, email, pwd)
		So(err, ShouldBeNil)
		return result.UserID
	}

	Convey("Login issues a token pair for valid credentials", t, func() {
		users := newFakeUserRepo()
		tokens := newFakeRefreshTokenRepo()
		svc := newAuthService(users, tokens)
		userID := register(svc, "parent@example.com", "hunter22!")

		result, err := svc.Login(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)
		So(result.AccessToken, ShouldNotBeEmpty)
		So(result.RefreshToken, ShouldNotBeEmpty)
		So(result.TokenType, ShouldEqual, "Bearer")
		So(result.ExpiresIn, ShouldEqual, 3600)
		So(result.User.ID, ShouldEqual, userID)
		So(tokens.count(), ShouldEqual, 1)

		Convey("the access token validates back to the same user", func() {
			user, err := svc.ValidateToken(ctx, result.AccessToken)
			So(err, ShouldBeNil)
			So(user.ID, ShouldEqual, userID)
		})

		Convey("last login time is stamped", func() {
			user, _ := users.FindByID(ctx, userID)
			So(user.LastLoginAt, ShouldNotBeNil)
		})
	})

	Convey("a wrong password and an unknown email fail identically", t, func() {
		svc := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo())
		register(svc, "parent@example.com", "hunter22!")

		_, wrongPwd := svc.Login(ctx, "parent@example.com", "nope")
		_, unknownEmail := svc.Login(ctx, "stranger@example.com", "nope")

		So(errors.Is(wrongPwd, ErrInvalidPassword), ShouldBeTrue)
		So(errors.Is(unknownEmail, ErrInvalidPassword), ShouldBeTrue)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	Convey("RefreshToken exchanges a live token for a new access token", t, func() {
		users := newFakeUserRepo()
		tokens := newFakeRefreshTokenRepo()
		svc := newAuthService(users, tokens)

		_, err := svc.Register(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)
		login, err := svc.Login(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)

		result, err := svc.RefreshToken(ctx, login.RefreshToken)
		So(err, ShouldBeNil)
		So(result.AccessToken, ShouldNotBeEmpty)

		_, err = svc.ValidateToken(ctx, result.AccessToken)
		So(err, ShouldBeNil)
	})

	Convey("an unknown refresh token is invalid", t, func() {
		svc := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo())

		_, err := svc.RefreshToken(ctx, "never-issued")
		So(errors.Is(err, ErrInvalidToken), ShouldBeTrue)
	})

	Convey("an expired refresh token is rejected and removed", t, func() {
		users := newFakeUserRepo()
		tokens := newFakeRefreshTokenRepo()
		svc := newAuthService(users, tokens)

		user := &auth.User{ID: id.New(), Email: "parent@example.com"}
		So(users.Create(ctx, user), ShouldBeNil)
		So(tokens.Create(ctx, &auth.RefreshToken{
			ID:        id.New(),
			UserID:    user.ID,
			Token:     "stale",
			ExpiresAt: time.Now().Add(-time.Minute),
		}), ShouldBeNil)

		_, err := svc.RefreshToken(ctx, "stale")
		So(errors.Is(err, ErrExpiredToken), ShouldBeTrue)
		So(tokens.count(), ShouldEqual, 0)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	Convey("Logout revokes the refresh token", t, func() {
		users := newFakeUserRepo()
		tokens := newFakeRefreshTokenRepo()
		svc := newAuthService(users, tokens)

		_, err := svc.Register(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)
		login, err := svc.Login(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)

		So(svc.Logout(ctx, login.RefreshToken), ShouldBeNil)
		So(tokens.count(), ShouldEqual, 0)

		_, err = svc.RefreshToken(ctx, login.RefreshToken)
		So(errors.Is(err, ErrInvalidToken), ShouldBeTrue)
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	Convey("ValidateToken rejects garbage", t, func() {
		svc := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo())

		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		So(errors.Is(err, ErrInvalidToken), ShouldBeTrue)
	})

	Convey("a token for a deleted user fails user lookup", t, func() {
		users := newFakeUserRepo()
		svc := newAuthService(users, newFakeRefreshTokenRepo())

		result, err := svc.Register(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)
		login, err := svc.Login(ctx, "parent@example.com", "hunter22!")
		So(err, ShouldBeNil)

		So(users.Delete(ctx, result.UserID), ShouldBeNil)

		_, err = svc.ValidateToken(ctx, login.AccessToken)
		So(errors.Is(err, ErrUserNotFound), ShouldBeTrue)
	})
}
