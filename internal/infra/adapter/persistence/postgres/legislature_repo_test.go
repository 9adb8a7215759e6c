package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	pg "github.com/mcarbmont89/full-congreso-sub000/internal/infra/adapter/persistence/postgres"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

func TestLegislatorRepo_List_Filters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE chamber = $1 AND parliamentary_group_id = $2 AND state = $3")).
		WithArgs("senado", int64(3), "Jalisco").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "chamber", "state", "district", "parliamentary_group_id", "photo_url",
			"email", "biography", "active", "created_at", "updated_at",
		}).AddRow(int64(1), "Ana Pérez", "senado", "Jalisco", "", int64(3), "", "", "", true, now, now))

	group := int64(3)
	got, err := pg.NewLegislatorRepo(db).List(context.Background(), repository.LegislatorFilters{
		Chamber: "senado", GroupID: &group, State: "Jalisco",
	})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].ParliamentaryGroupID == nil || *got[0].ParliamentaryGroupID != 3 {
		t.Fatalf("ParliamentaryGroupID = %v, want 3", got[0].ParliamentaryGroupID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestOrganRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM organs").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "organ_type", "image_url", "display_order", "created_at", "updated_at",
		}))

	got, err := pg.NewOrganRepo(db).Get(context.Background(), 1)
	if err != nil || got != nil {
		t.Fatalf("Get want (nil, nil), got (%v, %v)", got, err)
	}
}

func TestParliamentaryGroupRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM parliamentary_groups WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := pg.NewParliamentaryGroupRepo(db).Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}
