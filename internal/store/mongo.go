package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	signalsCollection = "website_signals"
	chunksCollection  = "knowledge_chunks"

	maxPoolSize            = 10
	minPoolSize            = 5
	serverSelectionTimeout = 5 * time.Second
)

// Store is a read-only client over the intelligence collections. The
// underlying mongo.Client pools connections and is safe for concurrent use,
// so one Store is shared by all in-flight requests.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

func NewStore(ctx context.Context, uri, dbName string, log *zap.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info("connected to mongodb", zap.String("database", dbName))

	return &Store{
		client: client,
		db:     client.Database(dbName),
		log:    log,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// FindSignals returns the signals record for a competitor, or (nil, nil) when
// no record exists for the pair.
func (s *Store) FindSignals(ctx context.Context, orgID, competitorID string) (*SignalsRecord, error) {
	filter := bson.M{
		"org_id":      orgID,
		"entity_id":   competitorID,
		"entity_type": EntityTypeCompetitor,
	}

	var record SignalsRecord
	err := s.db.Collection(signalsCollection).FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query website signals: %w", err)
	}
	return &record, nil
}

// FindKnowledgeChunks returns up to limit chunks for a competitor in the
// store's natural order. Chunk selection beyond the limit is deliberately
// store-defined; no relevance ranking is applied.
func (s *Store) FindKnowledgeChunks(ctx context.Context, orgID, competitorID string, limit int64) ([]KnowledgeChunk, error) {
	filter := bson.M{
		"org_id":      orgID,
		"entity_id":   competitorID,
		"entity_type": EntityTypeCompetitor,
	}

	cursor, err := s.db.Collection(chunksCollection).Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge chunks: %w", err)
	}
	defer cursor.Close(ctx)

	var chunks []KnowledgeChunk
	if err := cursor.All(ctx, &chunks); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge chunks: %w", err)
	}
	return chunks, nil
}
