package member

import (
	"context"
	"time"

	"github.com/cufc/member-api/internal/model"
	"github.com/cufc/member-api/internal/shared/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const membersCollection = "members"

// Store is the persistence boundary of the member service. The production
// implementation is MemberRepository; tests substitute an in-memory store.
// Lookups that match nothing return mongo.ErrNoDocuments.
type Store interface {
	Insert(ctx context.Context, m *model.Member) (*model.Member, error)
	FindAll(ctx context.Context, filter ListFilter) ([]model.Member, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Member, error)
	FindByAuth0ID(ctx context.Context, auth0ID string) (*model.Member, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update *UpdateMemberRequest) (*model.Member, error)
	UpdateByAuth0ID(ctx context.Context, auth0ID string, update *UpdateMemberRequest) (*model.Member, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Member, error)
}

type MemberRepository struct {
	coll *mongo.Collection
}

var _ Store = (*MemberRepository)(nil)

func NewMemberRepository(db *database.DB) *MemberRepository {
	return &MemberRepository{
		coll: db.Collection(membersCollection),
	}
}

// EnsureIndexes creates the unique indexes backing the email and identity
// uniqueness invariants. Concurrent duplicate creates are resolved here by
// the store, not by application-level coordination.
func EnsureIndexes(ctx context.Context, db *database.DB) error {
	_, err := db.Collection(membersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "personal_info.email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "auth0_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (r *MemberRepository) Insert(ctx context.Context, m *model.Member) (*model.Member, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return nil, err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

func (r *MemberRepository) FindAll(ctx context.Context, filter ListFilter) ([]model.Member, error) {
	cur, err := r.coll.Find(ctx, filter.query())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	members := []model.Member{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Member, error) {
	var m model.Member
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) FindByAuth0ID(ctx context.Context, auth0ID string) (*model.Member, error) {
	var m model.Member
	if err := r.coll.FindOne(ctx, bson.M{"auth0_id": auth0ID}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update *UpdateMemberRequest) (*model.Member, error) {
	return r.update(ctx, bson.M{"_id": id}, update)
}

func (r *MemberRepository) UpdateByAuth0ID(ctx context.Context, auth0ID string, update *UpdateMemberRequest) (*model.Member, error) {
	return r.update(ctx, bson.M{"auth0_id": auth0ID}, update)
}

func (r *MemberRepository) update(ctx context.Context, filter bson.M, update *UpdateMemberRequest) (*model.Member, error) {
	// An empty update is a plain read; $set rejects an empty document.
	if update.isEmpty() {
		var m model.Member
		if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
			return nil, err
		}
		return &m, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m model.Member
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": update.setDocument(time.Now().UTC())}, opts).Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Member, error) {
	var m model.Member
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// setDocument builds the $set payload for a partial update. Only supplied
// fields appear; personal_info replaces the whole subdocument.
func (r *UpdateMemberRequest) setDocument(now time.Time) bson.M {
	set := bson.M{"updated_at": now}

	if r.DisplayFirstName != nil {
		set["display_first_name"] = *r.DisplayFirstName
	}
	if r.DisplayLastName != nil {
		set["display_last_name"] = *r.DisplayLastName
	}
	if r.PersonalInfo != nil {
		set["personal_info"] = *r.PersonalInfo
	}
	if r.Role != nil {
		set["role"] = *r.Role
	}
	if r.SquareCustomerID != nil {
		set["square_customer_id"] = *r.SquareCustomerID
	}
	if r.GuardianFirstName != nil {
		set["guardian_first_name"] = *r.GuardianFirstName
	}
	if r.GuardianLastName != nil {
		set["guardian_last_name"] = *r.GuardianLastName
	}
	if r.IsWaiverOnFile != nil {
		set["is_waiver_on_file"] = *r.IsWaiverOnFile
	}
	if r.Notes != nil {
		set["notes"] = *r.Notes
	}

	return set
}

// query builds the store filter from the allow-listed fields.
func (f ListFilter) query() bson.M {
	q := bson.M{}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Email != "" {
		q["personal_info.email"] = f.Email
	}
	if f.IsWaiverOnFile != nil {
		q["is_waiver_on_file"] = *f.IsWaiverOnFile
	}
	return q
}
