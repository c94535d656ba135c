// Command migrate-status backfills the status field on legacy articles:
// every document without one is set to "draft". Run once against an existing
// database; safe to re-run.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	mongodb "github.com/pressmark/cms-api/internal/infrastructure/db/mongo"
	"github.com/pressmark/cms-api/internal/pkg/config"
	"github.com/pressmark/cms-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	res, err := db.Collection("articles").UpdateMany(
		ctx,
		bson.M{"status": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"status": "draft"}},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("status backfill failed")
	}

	log.Info().Int64("modified", res.ModifiedCount).Msg("status backfill complete")
}
