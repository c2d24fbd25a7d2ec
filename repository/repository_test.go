package repository

import (
	"database/sql/driver"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lightbnb/lightbnb/internal/jsonlog"
)

func newTestRepository(t *testing.T, out io.Writer) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	if out == nil {
		out = io.Discard
	}
	return New(db, jsonlog.New(out, jsonlog.LevelDebug)), mock
}

func checkExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

var listingColumns = []string{
	"id", "owner_id", "title", "description", "thumbnail_photo_url", "cover_photo_url", "cost_per_night",
	"parking_spaces", "number_of_bathrooms", "number_of_bedrooms", "country", "street", "city", "province",
	"post_code", "active", "average_rating",
}

func listingRow(id int64, city string, cost int64, rating float64) []driver.Value {
	return []driver.Value{
		id, int64(1), "Speed lamp", "description", "https://images.example/thumb.jpg", "https://images.example/cover.jpg",
		cost, int32(6), int32(4), int32(8), "Canada", "536 Namsub Highway", city, "Quebec", "28142", true, rating,
	}
}

var _ Repository = (*repository)(nil)
