package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/color-game/palettetool/models"
)

type fakeRepo struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakeRepo) Create(p models.StoredPalette) (models.StoredPalette, error) { return p, nil }
func (f *fakeRepo) Get(string) (models.StoredPalette, error) { return models.StoredPalette{}, nil }
func (f *fakeRepo) GetByHash(string) (models.StoredPalette, error) { return models.StoredPalette{}, nil }
func (f *fakeRepo) GetAll() ([]models.StoredPaletteSummary, error) { return nil, nil }
func (f *fakeRepo) Delete(string) error { return nil }

func (f *fakeRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func (f *fakeRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestPruneExpiredUsesRetention(t *testing.T) {
	repo := &fakeRepo{}
	s := NewScheduler(repo, 48*time.Hour)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	s.Clock = func() time.Time { return now }

	pruned, err := s.PruneExpired()
	if err != nil || pruned != 3 {
		t.Fatalf("PruneExpired = %d, %v", pruned, err)
	}
	if want := now.Add(-48 * time.Hour); !repo.cutoffs[0].Equal(want) {
		t.Fatalf("cutoff = %v, want %v", repo.cutoffs[0], want)
	}
}

func TestPruneExpiredReportsError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	s := NewScheduler(repo, time.Hour)
	if _, err := s.PruneExpired(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStartAndStop(t *testing.T) {
	repo := &fakeRepo{}
	s := NewScheduler(repo, time.Hour)
	s.Interval = 5 * time.Millisecond

	s.Start()
	deadline := time.Now().Add(2 * time.Second)
	for repo.calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Stop()
	s.Stop()

	if repo.calls() < 2 {
		t.Fatalf("expected an immediate and a ticked prune, got %d", repo.calls())
	}
}
