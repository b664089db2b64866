// Package scheduler runs background publishing jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bloghq/blogapi/internal/logger"
	"github.com/bloghq/blogapi/internal/services"
)

// publishSpec is how often scheduled posts are checked for publication.
const publishSpec = "@every 1m"

// Scheduler publishes posts whose publish time has passed.
type Scheduler struct {
	posts      *services.PostService
	cron       *cron.Cron
	running    bool
	registered bool
	mu         sync.Mutex
}

// New creates a new scheduler.
func New(posts *services.PostService) *Scheduler {
	return &Scheduler{
		posts: posts,
		cron:  cron.New(),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	// The job survives Stop; register it only on the first Start so a
	// restart does not double it up.
	if !s.registered {
		if _, err := s.cron.AddFunc(publishSpec, s.publishDue); err != nil {
			return fmt.Errorf("failed to add cron job: %w", err)
		}
		s.registered = true
	}

	s.cron.Start()
	s.running = true

	logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler. Running jobs finish before it returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false

	logger.Info("Scheduler stopped")
}

func (s *Scheduler) publishDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.posts.PublishDuePosts(ctx, time.Now().UTC()); err != nil {
		logger.Error("Failed to publish due posts: %v", err)
	}
}
