package runtime_test

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/alloyorm/alloy/dialect"
	"github.com/alloyorm/alloy/runtime"
)

type User struct {
	ID   int64
	Name string
	Role string
}

func (*User) Schema() runtime.Schema {
	return runtime.Schema{
		Table:      "users",
		PrimaryKey: "id",
		DDL: "create table if not exists users (" +
			"id integer primary key autoincrement, " +
			"name varchar(255) not null, " +
			"role varchar(255) default 'user' not null);",
	}
}

func (u *User) FromRow(r runtime.Row) error {
	u.ID = r.Int("id")
	u.Name = r.String("name")
	u.Role = r.String("role")
	return nil
}

func (u *User) PrimaryKeyValue() any { return u.ID }

type Profile struct {
	ID     int64
	UserID int64
	Bio    string
}

func (*Profile) Schema() runtime.Schema {
	return runtime.Schema{
		Table:      "profiles",
		PrimaryKey: "id",
		DDL: "create table if not exists profiles (" +
			"id integer primary key autoincrement, " +
			"user_id integer not null references users(id), " +
			"bio text not null);",
	}
}

func (p *Profile) FromRow(r runtime.Row) error {
	p.ID = r.Int("id")
	p.UserID = r.Int("user_id")
	p.Bio = r.String("bio")
	return nil
}

// newMockClient returns a client over a sqlmock connection that matches SQL
// text exactly.
func newMockClient(t *testing.T, d dialect.Dialect) (*runtime.Client, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return runtime.NewClientFromDB(d, db), mock, db
}
