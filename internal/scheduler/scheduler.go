package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Recorder is the part of the weather service the scheduler drives.
type Recorder interface {
	Favorites() ([]string, error)
	RecordObservation(ctx context.Context, city string) error
}

// Scheduler periodically records current conditions for every favorite city.
type Scheduler struct {
	scheduler *gocron.Scheduler
	recorder  Recorder
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, recorder Recorder) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		recorder:  recorder,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce records one observation per favorite city, concurrently.
func (s *Scheduler) RunOnce() {
	cities, err := s.recorder.Favorites()
	if err != nil {
		log.Printf("scheduler: could not read favorites: %v", err)
		return
	}
	if len(cities) == 0 {
		log.Println("scheduler: no favorite cities; nothing to record")
		return
	}

	log.Printf("scheduler: recording observations for %d cities", len(cities))

	var wg sync.WaitGroup
	for _, city := range cities {
		city := city // per-iteration copy; go directive is 1.21 (pre-1.22 loopvar semantics)
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := s.recorder.RecordObservation(ctx, city); err != nil {
				log.Printf("scheduler: observation failed for %s: %v", city, err)
			}
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed observation job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
