package datastore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/color-game/palettetool/migrations"
	"github.com/color-game/palettetool/models"
)

func newTestRepo(t *testing.T) PaletteDatabase {
	t.Helper()

	connStr, err := BuildSQLiteConnStr(filepath.Join(t.TempDir(), "db", "palettes.db"))
	if err != nil {
		t.Fatalf("BuildSQLiteConnStr: %v", err)
	}
	db, err := NewDB(DriverSQLite, connStr)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	repo, err := NewPaletteDatabase(db)
	if err != nil {
		t.Fatalf("NewPaletteDatabase: %v", err)
	}
	return repo
}

func testDocument(title string) models.PaletteDocument {
	pal := models.NewPalette(title, models.Provenance{ConversionTool: "test", ConversionDate: "1700000000"})
	pal.Colors = append(pal.Colors,
		models.Color{Name: "bg", Red: 0, Green: 0, Blue: 0, Alpha: 1},
		models.Color{Name: "fg", Red: 1, Green: 0.5, Blue: 0.25, Alpha: 1},
	)
	pal.Gradients["ramp"] = []byte(`["bg","fg"]`)
	return models.PaletteDocument{Palettes: []models.Palette{pal}}
}

func TestPaletteCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)

	sp, err := models.NewStoredPalette(testDocument("night"), time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("NewStoredPalette: %v", err)
	}
	if _, err := repo.Create(sp); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(sp.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "night" || got.ColorCount != 2 || got.ContentHash != sp.ContentHash {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.CreatedAt.Equal(sp.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, sp.CreatedAt)
	}
	if string(got.Document.Palettes[0].Gradients["ramp"]) != `["bg","fg"]` {
		t.Fatalf("gradients not preserved: %s", got.Document.Palettes[0].Gradients["ramp"])
	}

	byHash, err := repo.GetByHash(sp.ContentHash)
	if err != nil || byHash.ID != sp.ID {
		t.Fatalf("GetByHash = %+v, %v", byHash, err)
	}
}

func TestPaletteDuplicateHashRejected(t *testing.T) {
	repo := newTestRepo(t)

	first, _ := models.NewStoredPalette(testDocument("night"), time.Now())
	second, _ := models.NewStoredPalette(testDocument("night"), time.Now())
	if _, err := repo.Create(first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(second); err == nil {
		t.Fatalf("expected unique content_hash violation")
	}
}

func TestPaletteGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get("00000000-0000-0000-0000-000000000000")
	var noRows NoRowsError
	if !errors.As(err, &noRows) {
		t.Fatalf("expected NoRowsError, got %v", err)
	}
	if err := repo.Delete("00000000-0000-0000-0000-000000000000"); !errors.As(err, &noRows) {
		t.Fatalf("expected NoRowsError from Delete, got %v", err)
	}
}

func TestPaletteListDeleteAndPrune(t *testing.T) {
	repo := newTestRepo(t)

	old, _ := models.NewStoredPalette(testDocument("old"), time.Unix(1000, 0))
	recent, _ := models.NewStoredPalette(testDocument("recent"), time.Unix(5000, 0))
	for _, sp := range []models.StoredPalette{old, recent} {
		if _, err := repo.Create(sp); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 || all[0].Title != "recent" || all[1].Title != "old" {
		t.Fatalf("unexpected listing: %+v", all)
	}

	pruned, err := repo.DeleteOlderThan(time.Unix(2000, 0))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned %d, want 1", pruned)
	}

	if err := repo.Delete(recent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, _ = repo.GetAll()
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %+v", all)
	}
}

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	if _, err := NewDB("mysql", "x"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestBuildDBConnStr(t *testing.T) {
	got := BuildDBConnStr("", "pw", "user", "palettes", "disable")
	want := "postgres://user:pw@localhost/palettes?sslmode=disable"
	if got != want {
		t.Fatalf("BuildDBConnStr = %q, want %q", got, want)
	}
}
