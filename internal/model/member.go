package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the member's position within the club.
type Role string

const (
	RoleStudent  Role = "student"
	RoleCoach    Role = "coach"
	RoleAdmin    Role = "admin"
	RoleGuardian Role = "guardian"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCoach, RoleAdmin, RoleGuardian:
		return true
	}
	return false
}

// emailPattern is the store-level email constraint; request-level validation
// additionally runs the binding `email` rule.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Address is the member's mailing address. All fields are required.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Zip     string `bson:"zip" json:"zip"`
	Country string `bson:"country" json:"country"`
}

// PersonalInfo is the legal identity and contact subdocument.
type PersonalInfo struct {
	LegalFirstName string    `bson:"legal_first_name" json:"legal_first_name"`
	LegalLastName  string    `bson:"legal_last_name" json:"legal_last_name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	DateOfBirth    time.Time `bson:"date_of_birth" json:"date_of_birth"`
	Address        Address   `bson:"address" json:"address"`
}

// Member is a stored profile entity representing a student, coach, admin or
// guardian. Email and the identity-provider subject are unique across the
// collection; uniqueness is enforced by the store's indexes.
type Member struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Auth0ID           string             `bson:"auth0_id" json:"auth0Id"`
	DisplayFirstName  string             `bson:"display_first_name" json:"display_first_name"`
	DisplayLastName   string             `bson:"display_last_name" json:"display_last_name"`
	PersonalInfo      PersonalInfo       `bson:"personal_info" json:"personal_info"`
	Role              Role               `bson:"role" json:"role"`
	SquareCustomerID  string             `bson:"square_customer_id,omitempty" json:"square_customer_id,omitempty"`
	GuardianFirstName string             `bson:"guardian_first_name" json:"guardian_first_name"`
	GuardianLastName  string             `bson:"guardian_last_name" json:"guardian_last_name"`
	IsWaiverOnFile    bool               `bson:"is_waiver_on_file" json:"is_waiver_on_file"`
	Notes             string             `bson:"notes" json:"notes"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the document constraints that the store schema would
// otherwise enforce. It must pass before a member is persisted.
func (m *Member) Validate() error {
	var problems []string

	if m.Auth0ID == "" {
		problems = append(problems, "auth0Id is required")
	}
	if m.DisplayFirstName == "" {
		problems = append(problems, "display_first_name is required")
	}
	if m.DisplayLastName == "" {
		problems = append(problems, "display_last_name is required")
	}
	problems = append(problems, m.PersonalInfo.problems()...)
	if !m.Role.Valid() {
		problems = append(problems, "role must be one of student, coach, admin, guardian")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}
	return nil
}

func (p *PersonalInfo) problems() []string {
	var problems []string

	if p.LegalFirstName == "" {
		problems = append(problems, "personal_info.legal_first_name is required")
	}
	if p.LegalLastName == "" {
		problems = append(problems, "personal_info.legal_last_name is required")
	}
	switch {
	case p.Email == "":
		problems = append(problems, "personal_info.email is required")
	case !emailPattern.MatchString(p.Email):
		problems = append(problems, "please provide a valid email address")
	}
	if p.Phone == "" {
		problems = append(problems, "personal_info.phone is required")
	}
	if p.DateOfBirth.IsZero() {
		problems = append(problems, "personal_info.date_of_birth is required")
	}

	for _, f := range []struct{ name, value string }{
		{"street", p.Address.Street},
		{"city", p.Address.City},
		{"state", p.Address.State},
		{"zip", p.Address.Zip},
		{"country", p.Address.Country},
	} {
		if f.value == "" {
			problems = append(problems, fmt.Sprintf("personal_info.address.%s is required", f.name))
		}
	}

	return problems
}

// ValidatePartial checks only the constraints of a subdocument supplied in a
// partial update; untouched fields are never re-validated.
func (p *PersonalInfo) ValidatePartial() error {
	if problems := p.problems(); len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}
	return nil
}
