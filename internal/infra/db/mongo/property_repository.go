package mongo

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/money"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	col := db.Collection("agg_property")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "type", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &PropertyRepository{col: col}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.ID) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperty.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := newPropertyDocument(p)
	filter := bson.M{"_id": doc.ID, "version": p.Version}
	doc.Version = p.Version + 1
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	p.Version = doc.Version
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id domainproperty.ID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainproperty.ErrNotFound
	}
	return nil
}

// Search pushes the structural predicates to Mongo and applies the
// free-text matching in process, keeping behavior identical to the memory
// backend.
func (r *PropertyRepository) Search(ctx context.Context, f domainproperty.Filter) (domainproperty.SearchResult, error) {
	f = f.Normalized()
	filter := bson.M{}
	if f.FeaturedOnly {
		filter["featured"] = true
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.MinGuests > 0 {
		filter["max_guests"] = bson.M{"$gte": f.MinGuests}
	}
	price := bson.M{}
	if f.PriceMinCents > 0 {
		price["$gte"] = f.PriceMinCents
	}
	if f.PriceMaxCents > 0 {
		price["$lte"] = f.PriceMaxCents
	}
	if len(price) > 0 {
		filter["rate_cents"] = price
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return domainproperty.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	matches := make([]*domainproperty.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainproperty.SearchResult{}, err
		}
		p := doc.toAggregate()
		if f.Matches(p) {
			matches = append(matches, p)
		}
	}
	if err := cursor.Err(); err != nil {
		return domainproperty.SearchResult{}, err
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	domainproperty.SortItems(matches, f.Sort)

	total := len(matches)
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return domainproperty.SearchResult{Items: matches[start:end], Total: total}, nil
}

type propertyDocument struct {
	ID          string       `bson:"_id"`
	Name        string       `bson:"name"`
	Description string       `bson:"description"`
	RateCents   int64        `bson:"rate_cents"`
	Currency    string       `bson:"currency"`
	Location    string       `bson:"location"`
	Country     string       `bson:"country"`
	Type        string       `bson:"type"`
	Bedrooms    int          `bson:"bedrooms"`
	Bathrooms   int          `bson:"bathrooms"`
	MaxGuests   int          `bson:"max_guests"`
	Rating      float64      `bson:"rating"`
	ReviewCount int          `bson:"review_count"`
	Amenities   []string     `bson:"amenities"`
	Images      []string     `bson:"images"`
	Host        hostDocument `bson:"host"`
	Featured    bool         `bson:"featured"`
	CreatedAt   int64        `bson:"created_at"`
	UpdatedAt   int64        `bson:"updated_at"`
	Version     int64        `bson:"version"`
}

type hostDocument struct {
	ID    string `bson:"id"`
	Name  string `bson:"name"`
	Image string `bson:"image"`
}

func newPropertyDocument(p *domainproperty.Property) propertyDocument {
	return propertyDocument{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		RateCents:   p.NightlyRate.Amount,
		Currency:    p.NightlyRate.Currency,
		Location:    p.Location,
		Country:     p.Country,
		Type:        string(p.Type),
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		MaxGuests:   p.MaxGuests,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Amenities:   p.Amenities,
		Images:      p.Images,
		Host:        hostDocument{ID: p.Host.ID, Name: p.Host.Name, Image: p.Host.Image},
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
		Version:     p.Version,
	}
}

func (d propertyDocument) toAggregate() *domainproperty.Property {
	return &domainproperty.Property{
		ID:          domainproperty.ID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		NightlyRate: money.Money{Amount: d.RateCents, Currency: d.Currency},
		Location:    d.Location,
		Country:     d.Country,
		Type:        domainproperty.Type(d.Type),
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		MaxGuests:   d.MaxGuests,
		Rating:      d.Rating,
		ReviewCount: d.ReviewCount,
		Amenities:   d.Amenities,
		Images:      d.Images,
		Host:        domainproperty.Host{ID: d.Host.ID, Name: d.Host.Name, Image: d.Host.Image},
		Featured:    d.Featured,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}

var _ domainproperty.Repository = (*PropertyRepository)(nil)
