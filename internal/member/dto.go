package member

import (
	"errors"
	"time"

	"github.com/cufc/member-api/internal/model"
)

// CreateMemberRequest is the public signup payload. The firstName, lastName
// and email fields are checked by the declarative route validation before the
// service runs; the profile fields below them feed the stored document and
// are validated against the document constraints at create time.
type CreateMemberRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`

	Auth0ID           string              `json:"auth0Id"`
	DisplayFirstName  string              `json:"display_first_name"`
	DisplayLastName   string              `json:"display_last_name"`
	PersonalInfo      *model.PersonalInfo `json:"personal_info"`
	Role              model.Role          `json:"role"`
	SquareCustomerID  string              `json:"square_customer_id"`
	GuardianFirstName string              `json:"guardian_first_name"`
	GuardianLastName  string              `json:"guardian_last_name"`
	IsWaiverOnFile    bool                `json:"is_waiver_on_file"`
	Notes             string              `json:"notes"`
}

func (r *CreateMemberRequest) toModel() *model.Member {
	m := &model.Member{
		Auth0ID:           r.Auth0ID,
		DisplayFirstName:  r.DisplayFirstName,
		DisplayLastName:   r.DisplayLastName,
		Role:              r.Role,
		SquareCustomerID:  r.SquareCustomerID,
		GuardianFirstName: r.GuardianFirstName,
		GuardianLastName:  r.GuardianLastName,
		IsWaiverOnFile:    r.IsWaiverOnFile,
		Notes:             r.Notes,
	}
	if r.PersonalInfo != nil {
		m.PersonalInfo = *r.PersonalInfo
	}
	return m
}

// UpdateMemberRequest is a partial update: only non-nil fields are written,
// everything else is left untouched. personal_info, when present, replaces
// the whole subdocument and must therefore be complete.
type UpdateMemberRequest struct {
	DisplayFirstName  *string             `json:"display_first_name"`
	DisplayLastName   *string             `json:"display_last_name"`
	PersonalInfo      *model.PersonalInfo `json:"personal_info"`
	Role              *model.Role         `json:"role"`
	SquareCustomerID  *string             `json:"square_customer_id"`
	GuardianFirstName *string             `json:"guardian_first_name"`
	GuardianLastName  *string             `json:"guardian_last_name"`
	IsWaiverOnFile    *bool               `json:"is_waiver_on_file"`
	Notes             *string             `json:"notes"`
}

// Validate re-checks the constraints of the supplied fields only; fields the
// update does not touch are never re-validated.
func (r *UpdateMemberRequest) Validate() error {
	if r.DisplayFirstName != nil && *r.DisplayFirstName == "" {
		return errors.New("display_first_name is required")
	}
	if r.DisplayLastName != nil && *r.DisplayLastName == "" {
		return errors.New("display_last_name is required")
	}
	if r.PersonalInfo != nil {
		if err := r.PersonalInfo.ValidatePartial(); err != nil {
			return err
		}
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("role must be one of student, coach, admin, guardian")
	}
	return nil
}

func (r *UpdateMemberRequest) isEmpty() bool {
	return r.DisplayFirstName == nil &&
		r.DisplayLastName == nil &&
		r.PersonalInfo == nil &&
		r.Role == nil &&
		r.SquareCustomerID == nil &&
		r.GuardianFirstName == nil &&
		r.GuardianLastName == nil &&
		r.IsWaiverOnFile == nil &&
		r.Notes == nil
}

// Apply merges the update into m. Shared by the in-memory store used in
// tests; the Mongo store builds an equivalent $set document instead.
func (r *UpdateMemberRequest) Apply(m *model.Member, now time.Time) {
	if r.DisplayFirstName != nil {
		m.DisplayFirstName = *r.DisplayFirstName
	}
	if r.DisplayLastName != nil {
		m.DisplayLastName = *r.DisplayLastName
	}
	if r.PersonalInfo != nil {
		m.PersonalInfo = *r.PersonalInfo
	}
	if r.Role != nil {
		m.Role = *r.Role
	}
	if r.SquareCustomerID != nil {
		m.SquareCustomerID = *r.SquareCustomerID
	}
	if r.GuardianFirstName != nil {
		m.GuardianFirstName = *r.GuardianFirstName
	}
	if r.GuardianLastName != nil {
		m.GuardianLastName = *r.GuardianLastName
	}
	if r.IsWaiverOnFile != nil {
		m.IsWaiverOnFile = *r.IsWaiverOnFile
	}
	if r.Notes != nil {
		m.Notes = *r.Notes
	}
	if !r.isEmpty() {
		m.UpdatedAt = now
	}
}

// ListFilter is the allow-listed subset of query parameters forwarded to the
// store. Anything else in the query string is ignored rather than passed
// through verbatim.
type ListFilter struct {
	Role           string
	Email          string
	IsWaiverOnFile *bool
}
