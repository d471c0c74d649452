package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"charity-merch-api/internal/model"
)

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

// EnsureIndexes creates the indexes the order engine relies on. The
// unique index on order_number is the correctness backstop for the
// best-effort number generator.
func (m *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

func (m *MongoOrderRepository) Insert(ctx context.Context, o *model.Order) error {
	res, err := m.col.InsertOne(ctx, o)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateOrderNumber
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

func (m *MongoOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var res model.Order
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (m *MongoOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	return m.findMany(ctx, bson.M{"user_id": userID})
}

func (m *MongoOrderRepository) FindAll(ctx context.Context) ([]*model.Order, error) {
	return m.findMany(ctx, bson.M{})
}

// FindNonCancelled feeds the top-product and size-distribution reports.
func (m *MongoOrderRepository) FindNonCancelled(ctx context.Context) ([]*model.Order, error) {
	return m.findMany(ctx, bson.M{"status": bson.M{"$ne": model.StatusCancelled}})
}

func (m *MongoOrderRepository) findMany(ctx context.Context, filter bson.M) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Order
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

// UpdatePayment replaces the whole payment block in one write and
// returns the updated order. Resubmitted slips overwrite earlier ones.
func (m *MongoOrderRepository) UpdatePayment(ctx context.Context, id string, payment model.Payment) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"payment":    payment,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res model.Order
	err = m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ApplyTransition commits a status change as one conditional write:
// the filter pins the expected current status, and the status update
// and the history append land in the same document update, so either
// the whole transition commits or nothing does. A concurrent writer
// that moved the status first surfaces as ErrStatusConflict.
func (m *MongoOrderRepository) ApplyTransition(ctx context.Context, id string, from, to model.OrderStatus, rec model.StatusRecord) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	filter := bson.M{"_id": oid, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": rec.Timestamp,
		},
		"$push": bson.M{"history": rec},
	}
	res, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err := m.col.FindOne(ctx, bson.M{"_id": oid}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrStatusConflict
	}
	return nil
}

// Delete removes the order permanently. There is no tombstone; the
// audit trail goes with the document.
func (m *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoOrderRepository) CountOrders(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{})
}

// RevenueTotals aggregates order count, item count, revenue and
// shipping over revenue-recognized orders: payment confirmed and not
// cancelled. A non-nil since restricts to orders created at or after it.
func (m *MongoOrderRepository) RevenueTotals(ctx context.Context, since *time.Time) (model.RevenueTotals, error) {
	match := bson.M{
		"payment.status": model.PaymentPaid,
		"status":         bson.M{"$ne": model.StatusCancelled},
	}
	if since != nil {
		match["created_at"] = bson.M{"$gte": *since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$project", Value: bson.M{
			"total":    "$pricing.total",
			"shipping": "$pricing.shipping_fee",
			"items":    bson.M{"$sum": "$items.quantity"},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"orders":   bson.M{"$sum": 1},
			"items":    bson.M{"$sum": "$items"},
			"revenue":  bson.M{"$sum": "$total"},
			"shipping": bson.M{"$sum": "$shipping"},
		}}},
	}

	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return model.RevenueTotals{}, err
	}
	defer cur.Close(ctx)

	var rows []model.RevenueTotals
	if err := cur.All(ctx, &rows); err != nil {
		return model.RevenueTotals{}, err
	}
	if len(rows) == 0 {
		return model.RevenueTotals{}, nil
	}
	return rows[0], nil
}
