package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func mustCreateTrack(t *testing.T, repo *TrackRepository, title, artist, path string) models.Track {
	t.Helper()

	track := models.Track{Title: title, Artist: artist, Path: path, Duration: 180}
	if err := repo.Create(&track); err != nil {
		t.Fatalf("failed to create track %s: %v", title, err)
	}
	return track
}

func TestTrackRepository(t *testing.T) {
	t.Run("Create sets ID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := mustCreateTrack(t, repo, "Imagine", "John Lennon", "/music/lennon/imagine.mp3")

		if track.ID == "" {
			t.Error("track ID should be set after creation")
		}
	})

	t.Run("Create rejects empty track", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		if err := repo.Create(&models.Track{Path: "/a.mp3"}); err == nil {
			t.Error("expected error for track without title or artist")
		}
		if err := repo.Create(&models.Track{Title: "A"}); err == nil {
			t.Error("expected error for track without path")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		created := mustCreateTrack(t, repo, "Imagine", "John Lennon", "/music/lennon/imagine.mp3")

		got, err := repo.Get(created.ID)
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}
		if got.Title != "Imagine" || got.Artist != "John Lennon" {
			t.Errorf("unexpected track: %+v", got)
		}
	})

	t.Run("FindByPathSuffix", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		mustCreateTrack(t, repo, "Imagine", "John Lennon", "/music/lennon/imagine.mp3")
		mustCreateTrack(t, repo, "Jealous Guy", "John Lennon", "/music/lennon/jealous_guy.mp3")

		rows, err := repo.FindByPathSuffix("imagine.mp3")
		if err != nil {
			t.Fatalf("FindByPathSuffix failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].Title != "Imagine" {
			t.Errorf("unexpected row: %+v", rows[0])
		}

		rows, err = repo.FindByPathSuffix("missing.mp3")
		if err != nil {
			t.Fatalf("FindByPathSuffix failed: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}

		rows, err = repo.FindByPathSuffix("")
		if err != nil || rows != nil {
			t.Errorf("empty suffix should match nothing, got %v rows err %v", rows, err)
		}
	})

	t.Run("FindByPathSuffix treats LIKE wildcards literally", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		mustCreateTrack(t, repo, "Mix", "DJ", "/music/100%_mix/song.mp3")
		mustCreateTrack(t, repo, "Mixalike", "DJ", "/music/100abcdmix/song.mp3")
		mustCreateTrack(t, repo, "Underscore", "DJ", "/music/jealousXguy.mp3")

		rows, err := repo.FindByPathSuffix("100%_mix/song.mp3")
		if err != nil {
			t.Fatalf("FindByPathSuffix failed: %v", err)
		}
		if len(rows) != 1 || rows[0].Title != "Mix" {
			t.Fatalf("expected only the literal %%_ path, got %+v", rows)
		}

		rows, err = repo.FindByPathSuffix("jealous_guy.mp3")
		if err != nil {
			t.Fatalf("FindByPathSuffix failed: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("underscore must not act as a wildcard, got %+v", rows)
		}
	})

	t.Run("FindByNormalizedKey matches case and diacritic variants", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		mustCreateTrack(t, repo, "Café Tacvba", "Ráfaga", "/music/a.mp3")

		rows, err := repo.FindByNormalizedKey(shared.NormalizeKey("cafe tacvba"), shared.NormalizeKey("RAFAGA"))
		if err != nil {
			t.Fatalf("FindByNormalizedKey failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
	})

	t.Run("Search finds substrings", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		mustCreateTrack(t, repo, "Bohemian Rhapsody", "Queen", "/music/q/br.mp3")
		mustCreateTrack(t, repo, "Under Pressure", "Queen", "/music/q/up.mp3")
		mustCreateTrack(t, repo, "Imagine", "John Lennon", "/music/l/imagine.mp3")

		rows, err := repo.Search("queen")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 rows for artist search, got %d", len(rows))
		}

		rows, err = repo.Search("rhapsody")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("expected 1 row for title search, got %d", len(rows))
		}
	})

	t.Run("List and Count", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		mustCreateTrack(t, repo, "First", "A", "/1.mp3")
		mustCreateTrack(t, repo, "Second", "B", "/2.mp3")

		tracks, err := repo.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(tracks) != 2 || tracks[0].Title != "First" || tracks[1].Title != "Second" {
			t.Errorf("unexpected list order: %+v", tracks)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected count 2, got %d", count)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("FindOrCreateByName is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)

		first, created, err := repo.FindOrCreateByName("MyList")
		if err != nil {
			t.Fatalf("FindOrCreateByName failed: %v", err)
		}
		if !created {
			t.Error("first call should create the playlist")
		}

		second, created, err := repo.FindOrCreateByName("MyList")
		if err != nil {
			t.Fatalf("FindOrCreateByName failed: %v", err)
		}
		if created {
			t.Error("second call should reuse the playlist")
		}
		if first.ID != second.ID {
			t.Errorf("expected same playlist ID, got %s and %s", first.ID, second.ID)
		}
	})

	t.Run("AppendMember preserves order and allows duplicates", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		tracks := NewTrackRepository(db)
		playlists := NewPlaylistRepository(db)

		a := mustCreateTrack(t, tracks, "A", "X", "/a.mp3")
		b := mustCreateTrack(t, tracks, "B", "Y", "/b.mp3")

		pl, _, err := playlists.FindOrCreateByName("Ordered")
		if err != nil {
			t.Fatalf("FindOrCreateByName failed: %v", err)
		}

		for _, id := range []string{a.ID, b.ID, a.ID} {
			if err := playlists.AppendMember(pl.ID, id); err != nil {
				t.Fatalf("AppendMember failed: %v", err)
			}
		}

		members, err := playlists.Members(pl.ID)
		if err != nil {
			t.Fatalf("Members failed: %v", err)
		}
		if len(members) != 3 {
			t.Fatalf("expected 3 members, got %d", len(members))
		}
		if members[0].ID != a.ID || members[1].ID != b.ID || members[2].ID != a.ID {
			t.Errorf("unexpected member order: %+v", members)
		}
	})

	t.Run("Delete removes playlist and members", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		tracks := NewTrackRepository(db)
		playlists := NewPlaylistRepository(db)

		a := mustCreateTrack(t, tracks, "A", "X", "/a.mp3")
		pl, _, err := playlists.FindOrCreateByName("Doomed")
		if err != nil {
			t.Fatalf("FindOrCreateByName failed: %v", err)
		}
		if err := playlists.AppendMember(pl.ID, a.ID); err != nil {
			t.Fatalf("AppendMember failed: %v", err)
		}

		if err := playlists.Delete(pl.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		if _, err := playlists.Get(pl.ID); err == nil {
			t.Error("expected error getting deleted playlist")
		}

		if err := playlists.Delete(pl.ID); err == nil {
			t.Error("expected error deleting playlist twice")
		}
	})

	t.Run("Get reports member count", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		tracks := NewTrackRepository(db)
		playlists := NewPlaylistRepository(db)

		a := mustCreateTrack(t, tracks, "A", "X", "/a.mp3")
		pl, _, err := playlists.FindOrCreateByName("Counted")
		if err != nil {
			t.Fatalf("FindOrCreateByName failed: %v", err)
		}
		if err := playlists.AppendMember(pl.ID, a.ID); err != nil {
			t.Fatalf("AppendMember failed: %v", err)
		}

		got, err := playlists.Get(pl.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.TrackCount != 1 {
			t.Errorf("expected TrackCount 1, got %d", got.TrackCount)
		}
	})

	t.Run("List in creation order", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		playlists := NewPlaylistRepository(db)
		for _, name := range []string{"one", "two", "three"} {
			if _, _, err := playlists.FindOrCreateByName(name); err != nil {
				t.Fatalf("FindOrCreateByName failed: %v", err)
			}
		}

		all, err := playlists.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) != 3 || all[0].Name != "one" || all[2].Name != "three" {
			t.Errorf("unexpected playlist list: %+v", all)
		}
	})
}
