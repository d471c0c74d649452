package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"charity-merch-api/internal/model"
)

// MongoProductRepository is the read-only view of the catalog this
// service needs. Catalog writes happen elsewhere.
type MongoProductRepository struct {
	col *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{col: db.Collection("products")}
}

func (m *MongoProductRepository) CountActive(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{"is_active": true})
}

func (m *MongoProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var res model.Product
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
