package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityTypeCompetitor scopes every intelligence query; the collections also
// hold records for other entity types (prospects, partners) written by the
// crawler, which this service never reads.
const EntityTypeCompetitor = "competitor"

// Signals is the aggregated mention counters collected for one competitor.
// It is echoed verbatim in the response metadata as signals_used.
type Signals struct {
	ComplianceMentions int `bson:"compliance_mentions" json:"compliance_mentions"`
	PricingMentions    int `bson:"pricing_mentions" json:"pricing_mentions"`
	ProductMentions    int `bson:"product_mentions" json:"product_mentions"`
}

// SignalsRecord is a document in the website_signals collection. At most one
// exists per (org_id, entity_id) pair; absence means no intelligence has been
// collected yet.
type SignalsRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrgID       string             `bson:"org_id" json:"org_id"`
	EntityID    string             `bson:"entity_id" json:"entity_id"`
	EntityType  string             `bson:"entity_type" json:"entity_type"`
	Signals     Signals            `bson:"signals" json:"signals"`
	LastUpdated time.Time          `bson:"last_updated,omitempty" json:"-"`
}

// KnowledgeChunk is a fragment of unstructured text evidence about a
// competitor, stored in the knowledge_chunks collection.
type KnowledgeChunk struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrgID      string             `bson:"org_id" json:"org_id"`
	EntityID   string             `bson:"entity_id" json:"entity_id"`
	EntityType string             `bson:"entity_type" json:"entity_type"`
	Content    string             `bson:"content" json:"content"`
	Source     string             `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"-"`
}
