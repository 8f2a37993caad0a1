package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/color-game/palettetool/datastore"
)

// Scheduler prunes stored palettes older than Retention once per Interval
type Scheduler struct {
	PaletteRepo datastore.PaletteRepository
	Retention   time.Duration
	Interval    time.Duration
	Clock       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(repo datastore.PaletteRepository, retention time.Duration) *Scheduler {
	return &Scheduler{
		PaletteRepo: repo,
		Retention:   retention,
		Interval:    24 * time.Hour,
		Clock:       time.Now,
		done:        make(chan struct{}),
	}
}

// Start prunes once immediately, then on every tick until Stop
func (s *Scheduler) Start() {
	log.Printf("Scheduler started. Pruning palettes older than %v every %v", s.Retention, s.Interval)

	s.PruneExpired()

	s.ticker = time.NewTicker(s.Interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ticker.C:
				s.PruneExpired()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop stops the scheduler and waits for an in-flight prune to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		s.wg.Wait()
		log.Println("Scheduler stopped")
	})
}

// PruneExpired deletes palettes created before now minus Retention
func (s *Scheduler) PruneExpired() (int64, error) {
	cutoff := s.Clock().Add(-s.Retention)

	pruned, err := s.PaletteRepo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Error pruning palettes: %v", err)
		return 0, err
	}

	if pruned > 0 {
		log.Printf("Pruned %d palettes created before %s", pruned, cutoff.Format(time.RFC3339))
	}
	return pruned, nil
}
