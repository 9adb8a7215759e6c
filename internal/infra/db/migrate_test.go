package db

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUp_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, name := range TableNames() {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + name + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for range indexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnResult(sqlmock.NewResult(0, 0))
	for range searchIndexes {
		mock.ExpectExec("USING gin").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO homepage_config").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = MigrateUp(db)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TrigramUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for range TableNames() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for range indexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnError(sql.ErrConnDone)
	for range searchIndexes {
		mock.ExpectExec("USING gin").
			WillReturnError(sql.ErrConnDone)
	}
	mock.ExpectExec("INSERT INTO homepage_config").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, MigrateUp(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS news").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS news_feeds").
		WillReturnError(sql.ErrConnDone)

	err = MigrateUp(db)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "news_feeds")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_SeedError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.MatchExpectationsInOrder(false)
	for range TableNames() {
		mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for range indexes {
		mock.ExpectExec("CREATE INDEX").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE EXTENSION").WillReturnResult(sqlmock.NewResult(0, 0))
	for range searchIndexes {
		mock.ExpectExec("USING gin").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO homepage_config").WillReturnError(sql.ErrTxDone)

	err = MigrateUp(db)
	assert.ErrorIs(t, err, sql.ErrTxDone)
}

func TestMigrateDown_DropsInReverse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	names := TableNames()
	for i := len(names) - 1; i >= 0; i-- {
		mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS " + names[i] + " CASCADE")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, MigrateDown(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableNames_ReferencedTablesFirst(t *testing.T) {
	pos := map[string]int{}
	for i, n := range TableNames() {
		pos[n] = i
	}
	assert.Len(t, pos, 15)
	assert.Less(t, pos["radio_categories"], pos["radio_programs"])
	assert.Less(t, pos["radio_programs"], pos["radio_episodes"])
	assert.Less(t, pos["parliamentary_groups"], pos["legislators"])
	assert.Less(t, pos["live_streams"], pos["homepage_config"])
}
