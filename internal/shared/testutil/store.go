package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/cufc/member-api/internal/member"
	"github.com/cufc/member-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemberStore is an in-memory implementation of member.Store for testing.
// It reproduces the store signals the service classifies on:
// mongo.ErrNoDocuments for missing records and a duplicate-key write
// exception for uniqueness violations.
type MemberStore struct {
	mu      sync.Mutex
	members []model.Member

	// Calls counts every store method invocation, letting tests assert
	// that invalid identifiers never reach the store.
	Calls int
}

// Ensure MemberStore implements member.Store
var _ member.Store = (*MemberStore)(nil)

// NewMemberStore creates an empty in-memory member store
func NewMemberStore() *MemberStore {
	return &MemberStore{}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{
			{Code: 11000, Message: "E11000 duplicate key error collection: members"},
		},
	}
}

func (s *MemberStore) Insert(ctx context.Context, m *model.Member) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for _, existing := range s.members {
		if existing.PersonalInfo.Email == m.PersonalInfo.Email || existing.Auth0ID == m.Auth0ID {
			return nil, duplicateKeyError()
		}
	}

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now

	s.members = append(s.members, *m)
	return m, nil
}

func (s *MemberStore) FindAll(ctx context.Context, filter member.ListFilter) ([]model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	matched := []model.Member{}
	for _, m := range s.members {
		if filter.Role != "" && string(m.Role) != filter.Role {
			continue
		}
		if filter.Email != "" && m.PersonalInfo.Email != filter.Email {
			continue
		}
		if filter.IsWaiverOnFile != nil && m.IsWaiverOnFile != *filter.IsWaiverOnFile {
			continue
		}
		matched = append(matched, m)
	}
	return matched, nil
}

func (s *MemberStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for _, m := range s.members {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *MemberStore) FindByAuth0ID(ctx context.Context, auth0ID string) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for _, m := range s.members {
		if m.Auth0ID == auth0ID {
			found := m
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *MemberStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update *member.UpdateMemberRequest) (*model.Member, error) {
	return s.update(func(m *model.Member) bool { return m.ID == id }, update)
}

func (s *MemberStore) UpdateByAuth0ID(ctx context.Context, auth0ID string, update *member.UpdateMemberRequest) (*model.Member, error) {
	return s.update(func(m *model.Member) bool { return m.Auth0ID == auth0ID }, update)
}

func (s *MemberStore) update(match func(*model.Member) bool, update *member.UpdateMemberRequest) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for i := range s.members {
		if !match(&s.members[i]) {
			continue
		}

		// Uniqueness check when the update rewrites the email
		if update.PersonalInfo != nil {
			for j := range s.members {
				if j != i && s.members[j].PersonalInfo.Email == update.PersonalInfo.Email {
					return nil, duplicateKeyError()
				}
			}
		}

		update.Apply(&s.members[i], time.Now().UTC())
		updated := s.members[i]
		return &updated, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *MemberStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++

	for i := range s.members {
		if s.members[i].ID == id {
			deleted := s.members[i]
			s.members = append(s.members[:i], s.members[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// Len returns the number of stored members (useful for test assertions)
func (s *MemberStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
