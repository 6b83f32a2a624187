package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "luxestay/internal/domain/property"
	domainuser "luxestay/internal/domain/user"
	domainwishlist "luxestay/internal/domain/wishlist"
)

type WishlistRepository struct {
	col *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	col := db.Collection("wishlist_entries")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "property_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &WishlistRepository{col: col}
}

func (r *WishlistRepository) Add(ctx context.Context, entry domainwishlist.Entry) error {
	doc := bson.M{
		"user_id":     string(entry.UserID),
		"property_id": string(entry.PropertyID),
		"saved_at":    entry.SavedAt.UnixMilli(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return domainwishlist.ErrAlreadySaved
	}
	return err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID domainuser.ID, propertyID domainproperty.ID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": string(userID), "property_id": string(propertyID)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainwishlist.ErrNotFound
	}
	return nil
}

func (r *WishlistRepository) Contains(ctx context.Context, userID domainuser.ID, propertyID domainproperty.ID) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"user_id": string(userID), "property_id": string(propertyID)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainwishlist.Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": string(userID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]domainwishlist.Entry, 0)
	for cursor.Next(ctx) {
		var doc struct {
			UserID     string `bson:"user_id"`
			PropertyID string `bson:"property_id"`
			SavedAt    int64  `bson:"saved_at"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainwishlist.Entry{
			UserID:     domainuser.ID(doc.UserID),
			PropertyID: domainproperty.ID(doc.PropertyID),
			SavedAt:    time.UnixMilli(doc.SavedAt).UTC(),
		})
	}
	return out, cursor.Err()
}

var _ domainwishlist.Repository = (*WishlistRepository)(nil)
