package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	pg "github.com/mcarbmont89/full-congreso-sub000/internal/infra/adapter/persistence/postgres"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

var episodeCols = []string{
	"id", "program_id", "title", "description", "audio_url", "duration_seconds",
	"episode_number", "published_at", "created_at", "updated_at",
}

func TestRadioEpisodeRepo_List_ByProgram(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE program_id = $1")).
		WithArgs(int64(5), 20, 0).
		WillReturnRows(sqlmock.NewRows(episodeCols).
			AddRow(int64(1), int64(5), "Episodio 1", "", "/uploads/audio/a.mp3", 1800, 1, now, now, now))

	programID := int64(5)
	got, err := pg.NewRadioEpisodeRepo(db).List(context.Background(), &programID, 0, 20)
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].PublishedAt == nil || !got[0].PublishedAt.Equal(now) {
		t.Fatalf("PublishedAt = %v, want %v", got[0].PublishedAt, now)
	}
}

func TestRadioEpisodeRepo_Count_AllPrograms(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM radio_episodes")).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := pg.NewRadioEpisodeRepo(db).Count(context.Background(), nil)
	if err != nil || n != 12 {
		t.Fatalf("Count n=%d err=%v", n, err)
	}
}

func TestRadioEpisodeRepo_Create_UnknownProgram(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("INSERT INTO radio_episodes").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := pg.NewRadioEpisodeRepo(db).Create(context.Background(), &entity.RadioEpisode{ProgramID: 404, Title: "x"})
	if !errors.Is(err, entity.ErrInvalidReference) {
		t.Fatalf("want ErrInvalidReference, got %v", err)
	}
}

func TestRadioProgramRepo_List_Filters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category_id = $1 AND active = TRUE")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "host", "schedule", "image_url", "category_id",
			"active", "created_at", "updated_at",
		}).AddRow(int64(1), "Voces", "", "", "", "", nil, true, time.Now(), time.Now()))

	cat := int64(2)
	got, err := pg.NewRadioProgramRepo(db).List(context.Background(), repository.RadioProgramFilters{
		CategoryID: &cat, ActiveOnly: true,
	})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].CategoryID != nil {
		t.Fatalf("CategoryID = %v, want nil", *got[0].CategoryID)
	}
}

func TestRadioCategoryRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("UPDATE radio_categories").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.NewRadioCategoryRepo(db).Update(context.Background(), &entity.RadioCategory{ID: 8, Name: "x"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
