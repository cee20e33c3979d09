package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "home_team", "away_team").
		From("fixtures").
		Where(Eq("season", "2025/26"), Eq("gameweek", 1)).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, home_team, away_team FROM fixtures WHERE season = $1 AND gameweek = $2 ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2025/26" || args[1] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTableAndColumns(t *testing.T) {
	if _, _, err := Select().From("fixtures").ToSQL(); err == nil {
		t.Fatalf("expected error for select without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for select without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("submissions").
		Columns("source", "content_hash").
		Values("2025-26/gw1/alan.txt", "abc123").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO submissions (source, content_hash) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2025-26/gw1/alan.txt" || args[1] != "abc123" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("predictions").
		Columns("player_name", "home_goals", "away_goals").
		Values("Alan Shaw", 2, 1).
		Values("Ben Mills", 9, 9).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO predictions (player_name, home_goals, away_goals) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("submissions").
		Columns("source", "content_hash").
		Values("only-one").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for row width mismatch")
	}
}

type insertModelFixture struct {
	Source      string `db:"source"`
	ContentHash string `db:"content_hash"`
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("submissions", insertModelFixture{
		Source:      "2025-26/gw1/alan.txt",
		ContentHash: "abc123",
	}, "ON CONFLICT (source) DO UPDATE SET content_hash = EXCLUDED.content_hash")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO submissions (source, content_hash) VALUES ($1, $2) " +
		"ON CONFLICT (source) DO UPDATE SET content_hash = EXCLUDED.content_hash"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("submissions", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilModel *insertModelFixture
	if _, _, err := InsertModel("submissions", nilModel, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
