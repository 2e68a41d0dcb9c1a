package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

const (
	collectionAdminProfiles      = "admin_profiles"
	collectionContractorProfiles = "contractor_profiles"
)

// ProfileRepository upserts one dashboard profile per account.
type ProfileRepository struct {
	admins      *mongo.Collection
	contractors *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		admins:      db.Collection(collectionAdminProfiles),
		contractors: db.Collection(collectionContractorProfiles),
	}
}

func (r *ProfileRepository) SaveAdmin(ctx context.Context, owner string, p domain.AdminProfile) error {
	return upsertProfile(ctx, r.admins, owner, p)
}

func (r *ProfileRepository) SaveContractor(ctx context.Context, owner string, p domain.ContractorProfile) error {
	return upsertProfile(ctx, r.contractors, owner, p)
}

func upsertProfile(ctx context.Context, col *mongo.Collection, owner string, profile any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := col.UpdateOne(ctx,
		bson.M{"_id": owner},
		bson.M{"$set": bson.M{"profile": profile, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save %s profile: %w", col.Name(), err)
	}
	return nil
}
