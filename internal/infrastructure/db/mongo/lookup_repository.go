package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

const collectionLookups = "tracking_lookups"

// LookupRepository keeps one document per completed lookup.
type LookupRepository struct {
	col *mongo.Collection
}

var _ ports.LookupRepository = (*LookupRepository)(nil)

func NewLookupRepository(db *mongo.Database) *LookupRepository {
	return &LookupRepository{col: db.Collection(collectionLookups)}
}

// Record inserts snapshot. The generated id is written back to snapshot.ID.
func (r *LookupRepository) Record(ctx context.Context, snapshot *domain.LookupSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("insert lookup %s: %w", snapshot.TrackingNumber, err)
	}
	if id, ok := res.InsertedID.(interface{ Hex() string }); ok {
		snapshot.ID = id.Hex()
	}
	return nil
}

// Latest returns the most recent snapshot for trackingNumber.
func (r *LookupRepository) Latest(ctx context.Context, trackingNumber string) (*domain.LookupSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "looked_up_at", Value: -1}})

	var s domain.LookupSnapshot
	err := r.col.FindOne(ctx, bson.M{"tracking_number": trackingNumber}, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLookupNotFound
		}
		return nil, err
	}
	return &s, nil
}

// EnsureIndexes creates the indexes Latest relies on.
func (r *LookupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_number", Value: 1}, {Key: "looked_up_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
