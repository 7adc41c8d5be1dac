package runtime_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alloyorm/alloy/dialect"
	"github.com/alloyorm/alloy/query"
	"github.com/alloyorm/alloy/runtime"
)

func TestSelectBuilder_JoinBindsNothing(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	rows := sqlmock.NewRows([]string{"id", "name", "role", "user_id", "bio"}).
		AddRow(1, "Jane", "admin", 1, "Loves Go")
	mock.ExpectQuery("SELECT users.*, profiles.* FROM users INNER JOIN profiles ON users.id=profiles.user_id;").
		WillReturnRows(rows)

	users, err := runtime.FetchAll[User](context.Background(),
		runtime.SelectModels(client, &User{}, &Profile{}).
			From("users").
			Join(runtime.InnerJoin, "profiles", query.EqColumn("users.id", "profiles.user_id")))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Jane", users[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectBuilder_BaseTableFixesLazily(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	mock.ExpectQuery("SELECT users.*, profiles.* FROM users LEFT JOIN profiles ON users.id=profiles.user_id;").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

	// No From: the base table comes from the fetched model.
	_, err := runtime.FetchAll[User](context.Background(),
		runtime.SelectModels(client, &User{}, &Profile{}).
			Join(runtime.LeftJoin, "profiles", query.EqColumn("users.id", "profiles.user_id")))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectBuilder_WhereArgsFollowJoinArgs(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.Postgres)

	// The join binds nothing, so the WHERE condition takes index 1; a
	// second literal in the ON clause would have shifted it.
	mock.ExpectQuery("SELECT users.*, profiles.* FROM users INNER JOIN profiles ON users.id=profiles.user_id WHERE users.role=$1;").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

	_, err := runtime.FetchAll[User](context.Background(),
		runtime.SelectModels(client, &User{}, &Profile{}).
			From("users").
			Join(runtime.InnerJoin, "profiles", query.EqColumn("users.id", "profiles.user_id")).
			Where(query.Eq("users.role", "admin")))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectBuilder_IndicesContinueAcrossClauses(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.Postgres)

	mock.ExpectQuery("SELECT * FROM users INNER JOIN profiles ON users.id=profiles.user_id and profiles.bio=$1 WHERE users.role=$2;").
		WithArgs("Loves Go", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

	_, err := runtime.FetchAll[User](context.Background(),
		runtime.NewSelect(client, "*").
			From("users").
			Join(runtime.InnerJoin, "profiles",
				query.EqColumn("users.id", "profiles.user_id").And(query.Eq("profiles.bio", "Loves Go"))).
			Where(query.Eq("users.role", "admin")))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectBuilder_MultipleJoins(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	mock.ExpectQuery("SELECT * FROM users INNER JOIN profiles ON users.id=profiles.user_id FULL JOIN teams ON users.team_id=teams.id;").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

	_, err := runtime.FetchAll[User](context.Background(),
		runtime.NewSelect(client, "*").
			From("users").
			Join(runtime.InnerJoin, "profiles", query.EqColumn("users.id", "profiles.user_id")).
			Join(runtime.FullJoin, "teams", query.EqColumn("users.team_id", "teams.id")))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOne_ZeroRowsIsAnError(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	mock.ExpectQuery("SELECT * FROM users WHERE name=?1;").
		WithArgs("Nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

	_, err := runtime.FetchOne[User](context.Background(),
		runtime.NewSelect(client, "*").From("users").Where(query.Eq("name", "Nobody")))
	require.Error(t, err)
	assert.True(t, runtime.IsNotFound(err))
}

func TestFetchOne_ReturnsFirstRow(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	rows := sqlmock.NewRows([]string{"id", "name", "role"}).
		AddRow(1, "Jane", "admin").
		AddRow(2, "Joe", "user")
	mock.ExpectQuery("SELECT * FROM users;").WillReturnRows(rows)

	user, err := runtime.FetchOne[User](context.Background(),
		runtime.NewSelect(client, "*").From("users"))
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
}

func TestFetchOptional_ZeroRowsIsNil(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	mock.ExpectQuery("SELECT * FROM users WHERE name=?1;").
		WithArgs("Nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))

	user, err := runtime.FetchOptional[User](context.Background(),
		runtime.NewSelect(client, "*").From("users").Where(query.Eq("name", "Nobody")))
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSelectBuilder_SingleModelSelectsStar(t *testing.T) {
	client, mock, _ := newMockClient(t, dialect.SQLite)

	mock.ExpectQuery("SELECT * FROM profiles;").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bio"}).AddRow(1, 1, "Loves Go"))

	profiles, err := runtime.FetchAll[Profile](context.Background(),
		runtime.SelectModels(client, &Profile{}))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Loves Go", profiles[0].Bio)
}
