package domain

// MsgUserNameRequired is the client-facing message for a missing user name.
const MsgUserNameRequired = "Name is required"

// User is a single user record.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserInput carries the client-supplied fields of a user.
type UserInput struct {
	Name string `json:"name" validate:"required"`
}

// Validate checks that every mandatory field is present.
// It is used for create and full replace.
func (in UserInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return NewValidationError("name", MsgUserNameRequired, ErrValidation)
	}
	return nil
}

// NewUser builds a user with the given id from validated input.
func NewUser(id int, in UserInput) User {
	return User{ID: id, Name: in.Name}
}

// Patch returns a copy of u with every non-empty input field applied.
func (u User) Patch(in UserInput) User {
	if in.Name != "" {
		u.Name = in.Name
	}
	return u
}

// Replace returns a copy of u with all mandatory fields overwritten.
// The input must have passed Validate.
func (u User) Replace(in UserInput) User {
	u.Name = in.Name
	return u
}
