package handlers

import (
	"time"

	"media-stats/internal/database"
	"media-stats/internal/scheduler"
	"media-stats/internal/startup"
	"media-stats/internal/stats"
)

type Handlers struct {
	db        *database.Database
	stats     *stats.Service
	scheduler *scheduler.Scheduler
	mediaDir  string
	startedAt time.Time
}

func New(db *database.Database, statsService *stats.Service, sched *scheduler.Scheduler, config *startup.Config) *Handlers {
	return &Handlers{
		db:        db,
		stats:     statsService,
		scheduler: sched,
		mediaDir:  config.MediaDir,
		startedAt: time.Now(),
	}
}
