package member

import (
	"context"
	"errors"

	"github.com/cufc/member-api/internal/model"
	"github.com/cufc/member-api/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemberService wraps store calls and uniformly translates failures into the
// closed taxonomy in errors.go. Each operation is a single atomic store call;
// there are no retries and no partial-failure semantics.
type MemberService struct {
	store Store
}

func NewMemberService(store Store) *MemberService {
	return &MemberService{
		store: store,
	}
}

// GetByIdentity fetches the member linked to an identity-provider subject.
func (s *MemberService) GetByIdentity(ctx context.Context, auth0ID string) (*model.Member, error) {
	m, err := s.store.FindByAuth0ID(ctx, auth0ID)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

// UpdateByIdentity merges a partial update into the caller's own record.
func (s *MemberService) UpdateByIdentity(ctx context.Context, auth0ID string, update *UpdateMemberRequest) (*model.Member, error) {
	if err := update.Validate(); err != nil {
		return nil, errValidation(err)
	}

	m, err := s.store.UpdateByAuth0ID(ctx, auth0ID, update)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

// Create validates and persists a new member record. The store assigns the
// id and timestamps.
func (s *MemberService) Create(ctx context.Context, req *CreateMemberRequest) (*model.Member, error) {
	log := logger.FromContext(ctx)

	m := req.toModel()
	if err := m.Validate(); err != nil {
		return nil, errValidation(err)
	}

	created, err := s.store.Insert(ctx, m)
	if err != nil {
		log.Warn("failed to create member",
			"email", logger.MaskEmail(m.PersonalInfo.Email),
			"error", err,
		)
		return nil, classify(err)
	}

	log.Info("member created",
		"member_id", created.ID.Hex(),
		"email", logger.MaskEmail(created.PersonalInfo.Email),
	)
	return created, nil
}

// ListAll returns every record matching the allow-listed filter.
func (s *MemberService) ListAll(ctx context.Context, filter ListFilter) ([]model.Member, error) {
	members, err := s.store.FindAll(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	return members, nil
}

// GetByID fetches a record by its identifier. A structurally malformed
// identifier fails before the store is consulted.
func (s *MemberService) GetByID(ctx context.Context, id string) (*model.Member, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	m, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

// UpdateByID merges a partial update into the identified record.
func (s *MemberService) UpdateByID(ctx context.Context, id string, update *UpdateMemberRequest) (*model.Member, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if err := update.Validate(); err != nil {
		return nil, errValidation(err)
	}

	m, err := s.store.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

// DeleteByID removes the identified record.
func (s *MemberService) DeleteByID(ctx context.Context, id string) (*model.Member, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	m, err := s.store.DeleteByID(ctx, oid)
	if err != nil {
		return nil, classify(err)
	}

	logger.FromContext(ctx).Info("member deleted", "member_id", id)
	return m, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errInvalidID()
	}
	return oid, nil
}

// classify maps a store failure onto the closed taxonomy. Applied uniformly
// after every store call.
func classify(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return errNotFound()
	case mongo.IsDuplicateKeyError(err):
		return errDuplicateEmail(err)
	default:
		return errStore(err)
	}
}
