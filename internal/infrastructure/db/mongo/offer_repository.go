package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/offerhub/offers-api/internal/core/domain"
)

const offersCollection = "offers"

type OfferRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{col: db.Collection(offersCollection)}
}

type mongoOffer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	OriginalPrice   float64            `bson:"originalPrice"`
	Discount        float64            `bson:"discount"`
	DiscountedPrice float64            `bson:"discountedPrice"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func fromDomainOffer(o *domain.Offer) mongoOffer {
	return mongoOffer{
		Title:           o.Title,
		Description:     o.Description,
		OriginalPrice:   o.OriginalPrice,
		Discount:        o.Discount,
		DiscountedPrice: o.DiscountedPrice,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (mo mongoOffer) toDomain() *domain.Offer {
	return &domain.Offer{
		ID:              mo.ID.Hex(),
		Title:           mo.Title,
		Description:     mo.Description,
		OriginalPrice:   mo.OriginalPrice,
		Discount:        mo.Discount,
		DiscountedPrice: mo.DiscountedPrice,
		CreatedAt:       mo.CreatedAt.UTC(),
		UpdatedAt:       mo.UpdatedAt.UTC(),
	}
}

// Create inserts a new offer document.
func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainOffer(o)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert offer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOffer
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}
	return mo.toDomain(), nil
}

// List returns all offers, oldest first.
func (r *OfferRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoOffer
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}

	offers := make([]*domain.Offer, 0, len(docs))
	for _, d := range docs {
		offers = append(offers, d.toDomain())
	}
	return offers, nil
}

// Replace sets every mutable field of the offer in one write. Concurrent
// writers to the same id are last-write-wins.
func (r *OfferRepository) Replace(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	oid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return nil, domain.ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":           o.Title,
		"description":     o.Description,
		"originalPrice":   o.OriginalPrice,
		"discount":        o.Discount,
		"discountedPrice": o.DiscountedPrice,
		"updated_at":      o.UpdatedAt,
	}}

	var mo mongoOffer
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("update offer: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}
