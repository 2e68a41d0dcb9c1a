package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

const collectionProposals = "proposals"

type ProposalRepository struct {
	col *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{col: db.Collection(collectionProposals)}
}

type mongoProposal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ProposalName      string             `bson:"proposal_name"`
	ContractorID      string             `bson:"contractor_id"`
	ContractorName    string             `bson:"contractor_name"`
	ContractorInn     string             `bson:"contractor_inn"`
	ContractNumber    string             `bson:"contract_number,omitempty"`
	OkvedCode         string             `bson:"okved_code"`
	Facility          string             `bson:"facility"`
	SocialFacility    string             `bson:"social_facility"`
	Description       string             `bson:"description"`
	FullProposalPrice int64              `bson:"full_proposal_price"`
	CreatedAt         time.Time          `bson:"created_at"`
}

// Create inserts p and assigns its id.
func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoProposal(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

// List returns up to filter.Limit+1 matches after the cursor in _id order.
func (r *ProposalRepository) List(ctx context.Context, f domain.ProposalFilter) ([]domain.Proposal, error) {
	query, err := buildProposalQuery(f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(f.Limit + 1))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find proposals: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProposal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode proposals: %w", err)
	}

	out := make([]domain.Proposal, 0, len(docs))
	for i := range docs {
		out = append(out, fromMongoProposal(&docs[i]))
	}
	return out, nil
}

// EnsureIndexes creates indexes for the catalog's exact-match filters.
func (r *ProposalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "contractor_id", Value: 1}}},
		{Keys: bson.D{{Key: "contractor_inn", Value: 1}}},
		{Keys: bson.D{{Key: "okved_code", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func buildProposalQuery(f domain.ProposalFilter) (bson.M, error) {
	q := bson.M{}
	idCond := bson.M{}

	if f.ProposalID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ProposalID)
		if err != nil {
			return nil, fmt.Errorf("%w: proposal id %q", domain.ErrInvalidFilter, f.ProposalID)
		}
		idCond["$eq"] = oid
	}
	if f.AfterID != "" {
		oid, err := primitive.ObjectIDFromHex(f.AfterID)
		if err != nil {
			return nil, domain.ErrInvalidCursor
		}
		idCond["$gt"] = oid
	}
	if len(idCond) > 0 {
		q["_id"] = idCond
	}

	if f.ProposalName != "" {
		q["proposal_name"] = containsFold(f.ProposalName)
	}
	if f.ContractorName != "" {
		q["contractor_name"] = containsFold(f.ContractorName)
	}
	if f.ContractorID != "" {
		q["contractor_id"] = f.ContractorID
	}
	if f.ContractorInn != "" {
		q["contractor_inn"] = f.ContractorInn
	}
	if f.ContractNumber != "" {
		q["contract_number"] = f.ContractNumber
	}
	if len(f.Facilities) > 0 {
		q["facility"] = bson.M{"$in": f.Facilities}
	}
	if len(f.SocialFacilities) > 0 {
		q["social_facility"] = bson.M{"$in": f.SocialFacilities}
	}
	if len(f.OkvedCodes) > 0 {
		q["okved_code"] = bson.M{"$in": f.OkvedCodes}
	}

	price := bson.M{}
	if f.PriceRange.Min != nil {
		price["$gte"] = *f.PriceRange.Min
	}
	if f.PriceRange.Max != nil {
		price["$lte"] = *f.PriceRange.Max
	}
	if len(price) > 0 {
		q["full_proposal_price"] = price
	}

	created := bson.M{}
	if f.Period.From != nil {
		created["$gte"] = f.Period.From.UTC()
	}
	if f.Period.To != nil {
		created["$lte"] = f.Period.To.UTC()
	}
	if len(created) > 0 {
		q["created_at"] = created
	}

	return q, nil
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func toMongoProposal(p *domain.Proposal) mongoProposal {
	doc := mongoProposal{
		ProposalName:      p.ProposalName,
		ContractorID:      p.ContractorID,
		ContractorName:    p.ContractorName,
		ContractorInn:     p.ContractorInn,
		ContractNumber:    p.ContractNumber,
		OkvedCode:         p.OkvedCode,
		Facility:          p.Facility,
		SocialFacility:    p.SocialFacility,
		Description:       p.Description,
		FullProposalPrice: p.FullProposalPrice,
		CreatedAt:         p.CreatedAt.UTC(),
	}
	if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func fromMongoProposal(d *mongoProposal) domain.Proposal {
	return domain.Proposal{
		ID:                d.ID.Hex(),
		ProposalName:      d.ProposalName,
		ContractorID:      d.ContractorID,
		ContractorName:    d.ContractorName,
		ContractorInn:     d.ContractorInn,
		ContractNumber:    d.ContractNumber,
		OkvedCode:         d.OkvedCode,
		Facility:          d.Facility,
		SocialFacility:    d.SocialFacility,
		Description:       d.Description,
		FullProposalPrice: d.FullProposalPrice,
		CreatedAt:         d.CreatedAt,
	}
}
