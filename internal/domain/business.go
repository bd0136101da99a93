package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Limits on business fields.
const (
	MaxBusinessNameLength = 255
	MaxPhoneLength        = 20
)

// Business is the tenant entity owned 1:1 by a User.
type Business struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"-"`
	Owner       UserSummary `json:"owner"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewBusiness creates a Business owned by owner. Timestamps are set to now.
func NewBusiness(owner *User, name, email, phone, description string) (*Business, error) {
	now := time.Now().UTC()
	b := &Business{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Owner:       owner.Summary(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Email:       strings.TrimSpace(email),
		Phone:       strings.TrimSpace(phone),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks every field and reports all failures together.
func (b *Business) Validate() error {
	v := &ValidationError{}

	if b.ID == uuid.Nil {
		v.Add("id", "Business ID cannot be empty.")
	}
	if b.OwnerID == uuid.Nil {
		v.Add("owner", MsgRequired)
	}

	switch {
	case b.Name == "":
		v.Add("name", MsgBlank)
	case utf8.RuneCountInString(b.Name) > MaxBusinessNameLength:
		v.Add("name", "Ensure this field has no more than 255 characters.")
	}

	if b.Email == "" {
		v.Add("email", MsgBlank)
	} else if !IsValidEmail(b.Email) {
		v.Add("email", MsgInvalidEmail)
	}

	if utf8.RuneCountInString(b.Phone) > MaxPhoneLength {
		v.Add("phone", "Ensure this field has no more than 20 characters.")
	}

	return v.OrNil()
}

// BusinessPatch is a partial update. Nil fields are left unchanged.
type BusinessPatch struct {
	Name        *string
	Description *string
	Email       *string
	Phone       *string
	Address     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p BusinessPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Email == nil &&
		p.Phone == nil && p.Address == nil
}

// Apply returns a copy of b with the patch applied and UpdatedAt set to now.
// b itself is not modified, so a failed validation leaves the original intact.
func (b *Business) Apply(p BusinessPatch, now time.Time) (*Business, error) {
	updated := *b

	if p.Name != nil {
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.Email != nil {
		updated.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		updated.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		updated.Address = *p.Address
	}
	updated.UpdatedAt = now.UTC()

	if err := updated.Validate(); err != nil {
		return nil, err
	}
	return &updated, nil
}
