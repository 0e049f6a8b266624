package store

import (
	"strconv"

	"github.com/phrazzld/catalog-api/internal/csvtable"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/blob"
)

// UserStore defines the interface for user data persistence.
type UserStore = RecordStore[domain.User]

// UserSchema maps users onto the `id,name` table.
var UserSchema = Schema[domain.User]{
	Entity: "user",
	Table: csvtable.Schema[domain.User]{
		Columns: []string{"id", "name"},
		Encode: func(u domain.User) []string {
			return []string{strconv.Itoa(u.ID), u.Name}
		},
		Decode: func(r csvtable.Row) (domain.User, error) {
			id, err := r.Int("id")
			if err != nil {
				return domain.User{}, err
			}
			return domain.User{ID: id, Name: r.Get("name")}, nil
		},
	},
	ID:       func(u domain.User) int { return u.ID },
	NotFound: ErrUserNotFound,
}

// NewUserStore creates the user collection stored as file in blobs.
func NewUserStore(blobs blob.Store, file string, opts Options) *Collection[domain.User] {
	return NewCollection(UserSchema, blobs, file, opts)
}
