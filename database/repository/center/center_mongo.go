package centerRepo

import (
	"context"
	"fmt"
	"time"

	"hemovida/database"
	"hemovida/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCenterRepo implements CenterRepository using MongoDB.
type MongoCenterRepo struct {
	coll *mongo.Collection
}

// NewMongoCenterRepo creates a new instance of CenterRepository using MongoDB.
func NewMongoCenterRepo() CenterRepository {
	coll := database.DB().Collection("centers")
	repo := &MongoCenterRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCenterRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a center by its unique ID; returns nil when absent.
func (r *MongoCenterRepo) GetByID(id string) (*models.Center, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var center models.Center
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&center); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch center with id %s: %w", id, err)
	}
	return &center, nil
}

// GetAll retrieves all centers.
func (r *MongoCenterRepo) GetAll() ([]models.Center, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve centers: %w", err)
	}
	defer cursor.Close(ctx)

	var centers []models.Center
	for cursor.Next(ctx) {
		var c models.Center
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, nil
}

// Upsert inserts or replaces a center record.
func (r *MongoCenterRepo) Upsert(center *models.Center) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": center.ID}, center, opts); err != nil {
		return fmt.Errorf("failed to upsert center %s: %w", center.ID, err)
	}
	return nil
}
