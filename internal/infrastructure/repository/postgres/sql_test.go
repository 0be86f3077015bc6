package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must be not-found")
	}
	if !isNotFound(fmt.Errorf("get game: %w", sql.ErrNoRows)) {
		t.Fatal("wrapped sql.ErrNoRows must be not-found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatal("arbitrary error must not be not-found")
	}
	if isNotFound(nil) {
		t.Fatal("nil must not be not-found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	conflict := &pq.Error{Code: uniqueViolationCode}
	if !isUniqueViolation(conflict) {
		t.Fatal("pq 23505 must be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert odds: %w", conflict)) {
		t.Fatal("wrapped pq 23505 must be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign key violation must not match")
	}
	if isUniqueViolation(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must not match")
	}
}
