package store

// Unique constraint names shared by every SQL schema. SQLite reports a
// violation as "table.column", which maps onto the same names by replacing
// the dot and appending "_key".
const (
	ConstraintUsername      = "users_username_key"
	ConstraintUserEmail     = "users_email_key"
	ConstraintBusinessOwner = "businesses_owner_id_key"
	ConstraintBusinessName  = "businesses_name_key"
	ConstraintBusinessEmail = "businesses_email_key"
)

var uniqueConstraintErrors = map[string]error{
	ConstraintUsername:      ErrUsernameExists,
	ConstraintUserEmail:     ErrUserEmailExists,
	ConstraintBusinessOwner: ErrOwnerHasBusiness,
	ConstraintBusinessName:  ErrBusinessNameExists,
	ConstraintBusinessEmail: ErrBusinessEmailExists,
}

// UniqueViolation returns the sentinel for a violated unique constraint, or
// ErrDuplicate if the constraint is not one of ours.
func UniqueViolation(constraint string) error {
	if err, ok := uniqueConstraintErrors[constraint]; ok {
		return err
	}
	return ErrDuplicate
}
