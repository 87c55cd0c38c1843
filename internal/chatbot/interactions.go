package chatbot

import (
	"context"
	"fmt"

	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// InteractionLog records completed exchanges.
type InteractionLog interface {
	Record(ctx context.Context, in models.ChatInteraction) error
}

// StoreLog appends interactions to the chat_interactions collection.
type StoreLog struct {
	store database.Store
}

func NewStoreLog(store database.Store) *StoreLog {
	return &StoreLog{store: store}
}

func (l *StoreLog) Record(ctx context.Context, in models.ChatInteraction) error {
	_, err := database.Insert(ctx, l.store, database.ChatInteractions, func(id int) models.ChatInteraction {
		in.ID = id
		return in
	})
	return err
}

// MongoLog writes interactions to a MongoDB collection.
type MongoLog struct {
	coll *mongo.Collection
}

func NewMongoLog(db *mongo.Database) *MongoLog {
	return &MongoLog{coll: db.Collection(database.ChatInteractions)}
}

func (l *MongoLog) Record(ctx context.Context, in models.ChatInteraction) error {
	if _, err := l.coll.InsertOne(ctx, in); err != nil {
		return fmt.Errorf("insert chat interaction: %w", err)
	}
	return nil
}
