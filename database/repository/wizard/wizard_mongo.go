package wizardRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// wizardDocument adds the expiry the TTL index works from.
type wizardDocument struct {
	models.WizardSession `bson:",inline"`
	ExpiresAt            time.Time `bson:"expiresAt"`
}

// MongoWizardRepo stores sessions in a collection with a TTL index on expiresAt.
type MongoWizardRepo struct {
	coll *mongo.Collection
	ttl  time.Duration
	now  func() time.Time
}

// NewMongoWizardRepo creates the repository and makes sure its indexes exist.
func NewMongoWizardRepo(db *mongo.Database, ttl time.Duration) (WizardRepository, error) {
	repo := &MongoWizardRepo{
		coll: db.Collection("wizard_sessions"),
		ttl:  ttl,
		now:  time.Now,
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoWizardRepo) Save(ctx context.Context, session *models.WizardSession) error {
	doc := wizardDocument{WizardSession: *session, ExpiresAt: r.now().Add(r.ttl)}
	filter := bson.M{"sessionId": session.SessionID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

// Get filters on expiresAt as well, since the TTL monitor only sweeps once a minute.
func (r *MongoWizardRepo) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	var doc wizardDocument
	filter := bson.M{"sessionId": sessionID, "expiresAt": bson.M{"$gt": r.now()}}
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	return &doc.WizardSession, nil
}

func (r *MongoWizardRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"sessionId": sessionID}); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}
