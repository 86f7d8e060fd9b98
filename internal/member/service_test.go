package member_test

import (
	"context"
	"testing"
	"time"

	"github.com/cufc/member-api/internal/member"
	"github.com/cufc/member-api/internal/model"
	"github.com/cufc/member-api/internal/shared/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCreateRequest builds a signup payload that satisfies every document
// constraint. Tests override individual fields to provoke failures.
func validCreateRequest(email, auth0ID string) *member.CreateMemberRequest {
	return &member.CreateMemberRequest{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            email,
		Auth0ID:          auth0ID,
		DisplayFirstName: "Ada",
		DisplayLastName:  "Lovelace",
		Role:             model.RoleStudent,
		PersonalInfo: &model.PersonalInfo{
			LegalFirstName: "Ada",
			LegalLastName:  "Lovelace",
			Email:          email,
			Phone:          "555-0100",
			DateOfBirth:    time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC),
			Address: model.Address{
				Street:  "1 Analytical Way",
				City:    "London",
				State:   "LDN",
				Zip:     "00001",
				Country: "UK",
			},
		},
	}
}

func TestMemberService_CreateAndGet(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	// When
	created, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))

	// Then
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
	assert.Equal(t, "ada@example.com", created.PersonalInfo.Email)

	// And the record is retrievable by id and by identity subject
	byID, err := service.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySubject, err := service.GetByIdentity(ctx, "auth0|ada")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySubject.ID)
}

func TestMemberService_Create_DuplicateEmail(t *testing.T) {
	// Given an existing member
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	_, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	// When a second signup reuses the email
	_, err = service.Create(ctx, validCreateRequest("ada@example.com", "auth0|other"))

	// Then the uniqueness violation is classified as a duplicate
	var svcErr *member.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, member.KindDuplicateEmail, svcErr.Kind)
	assert.Equal(t, "Duplicate key error: A member with this email already exists", svcErr.Message)
	assert.Equal(t, 1, store.Len())
}

func TestMemberService_Create_InvalidDocument(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*member.CreateMemberRequest)
		reason string
	}{
		{
			name:   "missing identity subject",
			mutate: func(r *member.CreateMemberRequest) { r.Auth0ID = "" },
			reason: "auth0Id is required",
		},
		{
			name:   "missing display name",
			mutate: func(r *member.CreateMemberRequest) { r.DisplayFirstName = "" },
			reason: "display_first_name is required",
		},
		{
			name:   "malformed email",
			mutate: func(r *member.CreateMemberRequest) { r.PersonalInfo.Email = "not-an-email" },
			reason: "please provide a valid email address",
		},
		{
			name:   "unknown role",
			mutate: func(r *member.CreateMemberRequest) { r.Role = "wizard" },
			reason: "role must be one of student, coach, admin, guardian",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			store := testutil.NewMemberStore()
			service := member.NewMemberService(store)
			req := validCreateRequest("ada@example.com", "auth0|ada")
			tt.mutate(req)

			// When
			_, err := service.Create(context.Background(), req)

			// Then
			var svcErr *member.Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, member.KindValidation, svcErr.Kind)
			assert.Contains(t, svcErr.Message, "Validation Error: ")
			assert.Contains(t, svcErr.Message, tt.reason)

			// And nothing was persisted
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestMemberService_MalformedID_SkipsStore(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	ops := []struct {
		name string
		call func(id string) error
	}{
		{"get", func(id string) error { _, err := service.GetByID(ctx, id); return err }},
		{"update", func(id string) error {
			_, err := service.UpdateByID(ctx, id, &member.UpdateMemberRequest{})
			return err
		}},
		{"delete", func(id string) error { _, err := service.DeleteByID(ctx, id); return err }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			// When the identifier is not a well-formed ObjectID
			err := op.call("not-a-hex-id")

			// Then the failure is detected before any store call
			var svcErr *member.Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, member.KindInvalidID, svcErr.Kind)
			assert.Equal(t, "Invalid member ID", svcErr.Message)
			assert.Equal(t, 0, store.Calls)
		})
	}
}

func TestMemberService_UpdateByID_PartialMerge(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	// When only the notes field is updated
	notes := "Paid annual dues"
	update := &member.UpdateMemberRequest{Notes: &notes}
	updated, err := service.UpdateByID(ctx, created.ID.Hex(), update)

	// Then the touched field changed and everything else survived
	require.NoError(t, err)
	assert.Equal(t, "Paid annual dues", updated.Notes)
	assert.Equal(t, created.DisplayFirstName, updated.DisplayFirstName)
	assert.Equal(t, created.PersonalInfo, updated.PersonalInfo)
	assert.Equal(t, created.Role, updated.Role)

	// And applying the same update again leaves the record unchanged
	again, err := service.UpdateByID(ctx, created.ID.Hex(), update)
	require.NoError(t, err)
	assert.Equal(t, updated.Notes, again.Notes)
	assert.Equal(t, updated.PersonalInfo, again.PersonalInfo)
}

func TestMemberService_UpdateByID_EmptyUpdateIsRead(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	// When the update carries no fields
	updated, err := service.UpdateByID(ctx, created.ID.Hex(), &member.UpdateMemberRequest{})

	// Then the record is returned untouched
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
	assert.Equal(t, created.Notes, updated.Notes)
}

func TestMemberService_UpdateByID_InvalidField(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	// When the update supplies an unknown role
	role := model.Role("wizard")
	_, err = service.UpdateByID(ctx, created.ID.Hex(), &member.UpdateMemberRequest{Role: &role})

	// Then only the touched field is validated and rejected
	var svcErr *member.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, member.KindValidation, svcErr.Kind)

	// And the stored record kept its original role
	current, err := service.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, current.Role)
}

func TestMemberService_UpdateByIdentity(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	_, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	// When the caller updates their own record
	first := "Augusta"
	updated, err := service.UpdateByIdentity(ctx, "auth0|ada", &member.UpdateMemberRequest{
		DisplayFirstName: &first,
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.DisplayFirstName)

	// And an unknown subject is reported as missing
	_, err = service.UpdateByIdentity(ctx, "auth0|ghost", &member.UpdateMemberRequest{
		DisplayFirstName: &first,
	})
	var svcErr *member.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, member.KindNotFound, svcErr.Kind)
}

func TestMemberService_DeleteByID(t *testing.T) {
	// Given
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	// When
	deleted, err := service.DeleteByID(ctx, created.ID.Hex())

	// Then
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, 0, store.Len())

	// And the record is gone
	_, err = service.GetByID(ctx, created.ID.Hex())
	var svcErr *member.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, member.KindNotFound, svcErr.Kind)
	assert.Equal(t, "Member not found", svcErr.Message)
}

func TestMemberService_ListAll(t *testing.T) {
	// Given two members with different roles
	store := testutil.NewMemberStore()
	service := member.NewMemberService(store)
	ctx := context.Background()

	_, err := service.Create(ctx, validCreateRequest("ada@example.com", "auth0|ada"))
	require.NoError(t, err)

	coach := validCreateRequest("grace@example.com", "auth0|grace")
	coach.Role = model.RoleCoach
	coach.PersonalInfo.Email = "grace@example.com"
	_, err = service.Create(ctx, coach)
	require.NoError(t, err)

	// When listing without a filter
	all, err := service.ListAll(ctx, member.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// When filtering by role
	coaches, err := service.ListAll(ctx, member.ListFilter{Role: "coach"})
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	assert.Equal(t, "grace@example.com", coaches[0].PersonalInfo.Email)

	// When filtering by email with no match
	none, err := service.ListAll(ctx, member.ListFilter{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
