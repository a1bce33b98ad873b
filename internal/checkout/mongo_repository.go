package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) ReceiptRepository {
	return &mongoRepository{
		collection: db.Collection("receipts"),
	}
}

func (m *mongoRepository) InsertReceipt(ctx context.Context, receipt *domain.Receipt) error {
	if _, err := m.collection.InsertOne(ctx, receipt); err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

func (m *mongoRepository) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	var receipt domain.Receipt

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&receipt)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return &receipt, nil
}
