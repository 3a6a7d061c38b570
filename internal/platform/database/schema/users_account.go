package schema

import (
	"strings"

	"github.com/taibuivan/accounts/internal/platform/constants"
)

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	IsAdmin   string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     constants.SchemaUsers + ".account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	IsAdmin:   "isadmin",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.IsAdmin, t.CreatedAt, t.UpdatedAt,
	}
}

// SelectList returns the column list joined for a SELECT clause.
func (t UserAccountTable) SelectList() string {
	return strings.Join(t.Columns(), ", ")
}
