package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder_WhereAndOrder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "name").From("teams").
		Where(Eq("name", "Boston Celtics")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT id, name FROM teams WHERE name = $1 ORDER BY id"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != "Boston Celtics" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectBuilder_ExprPlaceholderRewrite(t *testing.T) {
	t.Parallel()

	from := time.Date(2021, 10, 18, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	query, args, err := Select("*").From("games").
		Where(
			Expr("commence_time >= ?", from),
			Expr("commence_time < ?", to),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT * FROM games WHERE commence_time >= $1 AND commence_time < $2"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got=%d", len(args))
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertBuilder_WithSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("games").
		Columns("external_game_id", "commence_time").
		Values("abc123", time.Now()).
		Suffix("ON CONFLICT (external_game_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO games (external_game_id, commence_time) VALUES ($1, $2) ON CONFLICT (external_game_id) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got=%d", len(args))
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("games").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatal("expected error for value/column count mismatch")
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		Name     string `db:"name"`
		Skipped  string `db:"-"`
		Untagged string
		Price    float64 `db:"price"`
	}

	query, args, err := InsertModel("quotes", row{Name: "dk", Skipped: "x", Untagged: "y", Price: -110}, "")
	if err != nil {
		t.Fatalf("InsertModel error: %v", err)
	}

	want := "INSERT INTO quotes (name, price) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 2 || args[0] != "dk" || args[1] != -110.0 {
		t.Fatalf("unexpected args: %v", args)
	}
}
