package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"lull/internal/config"
	"lull/internal/model/auth"
	"lull/internal/pkg/id"
	"lull/internal/pkg/logger"
	"lull/internal/pkg/mongodb"
	"lull/internal/pkg/password"
	authrepo "lull/internal/repository/auth"
)

// Seeds a local account for development. Idempotent: an existing account
// with the same email is left untouched.
func main() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.lull")

	viper.SetEnvPrefix("LULL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		os.Exit(1)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	ctx := context.Background()
	userRepo := authrepo.NewUserRepo(client.Database())

	email := os.Getenv("SEED_USER_EMAIL")
	if email == "" {
		email = "parent@example.com"
	}
	passwordPlain := os.Getenv("SEED_USER_PASSWORD")
	if passwordPlain == "" {
		passwordPlain = "bedtime123"
	}

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Info().Str("email", email).Msg("seed user already exists, nothing to do")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Fatal().Err(err).Msg("failed to query user")
	}

	hashed, err := password.Hash(passwordPlain)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password failed")
	}

	user := &auth.User{
		ID:       id.New(),
		Email:    email,
		Password: hashed,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("create seed user failed")
	}

	fmt.Printf("Seed user created: email=%s password=%s\n", email, passwordPlain)
	fmt.Println("Remember to store OpenAI and Hume API keys via PUT /api/v1/credentials/{openai,hume} before generating stories.")
}
