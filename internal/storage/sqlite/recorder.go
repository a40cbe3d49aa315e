// Package sqlitestorage records simulation runs, sampled tick totals and
// incidents into a SQLite database through GORM.
package sqlitestorage

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"thermo-ca/internal/sims/thermal"
)

// Recorder is a thermal.Observer persisting reports for one run at a time.
type Recorder struct {
	db          *gorm.DB
	log         zerolog.Logger
	runID       string
	sampleEvery int64
}

// Open connects to the database at path, creating the schema if needed. An
// empty path opens a private in-memory database.
func Open(path string, sampleEvery int, log zerolog.Logger) (*Recorder, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if path == "" {
		// Each pooled connection would otherwise see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql interface: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if sampleEvery <= 0 {
		sampleEvery = 1
	}
	return &Recorder{db: db, log: log, sampleEvery: int64(sampleEvery)}, nil
}

// StartRun registers a new run and directs subsequent reports to it.
func (r *Recorder) StartRun(cfg thermal.Config) (string, error) {
	run := Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Seed:      cfg.Seed,
		Params:    cfg.Params,
	}
	if err := r.db.Create(&run).Error; err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	r.runID = run.ID
	r.log.Info().Str("run", run.ID).Msg("recording run")
	return run.ID, nil
}

// RunID returns the active run, empty before StartRun.
func (r *Recorder) RunID() string { return r.runID }

// ObserveTick implements thermal.Observer. Every sampleEvery-th tick and
// every tick that paused or raised incidents is stored.
func (r *Recorder) ObserveTick(rep thermal.TickReport) {
	if r.runID == "" {
		return
	}
	if rep.Tick%r.sampleEvery == 0 || rep.Paused || len(rep.Incidents) > 0 {
		sample := TickSample{
			RunID:      r.runID,
			Tick:       rep.Tick,
			DurationMs: float64(rep.Duration) / float64(time.Millisecond),
			Paused:     rep.Paused,
			Energy:     rep.Totals.Energy,
			Water:      rep.Totals.Water,
			Gas:        rep.Totals.Gas,
			MaxWind:    rep.MaxWind,
		}
		if err := r.db.Create(&sample).Error; err != nil {
			r.log.Error().Err(err).Int64("tick", rep.Tick).Msg("failed to record tick")
		}
	}
	if len(rep.Incidents) == 0 {
		return
	}
	records := make([]IncidentRecord, len(rep.Incidents))
	for i, in := range rep.Incidents {
		records[i] = IncidentRecord{
			RunID:   r.runID,
			Tick:    in.Tick,
			Kind:    string(in.Kind),
			X:       in.X,
			Y:       in.Y,
			Species: int(in.Species),
			Value:   in.Value,
		}
	}
	if err := r.db.Create(&records).Error; err != nil {
		r.log.Error().Err(err).Int64("tick", rep.Tick).Msg("failed to record incidents")
	}
}

// Runs lists recorded runs, oldest first.
func (r *Recorder) Runs() ([]Run, error) {
	var runs []Run
	err := r.db.Order("started_at").Find(&runs).Error
	return runs, err
}

// Samples lists the stored ticks of a run in tick order.
func (r *Recorder) Samples(runID string) ([]TickSample, error) {
	var samples []TickSample
	err := r.db.Where("run_id = ?", runID).Order("tick").Find(&samples).Error
	return samples, err
}

// Incidents lists the incidents of a run in the order raised.
func (r *Recorder) Incidents(runID string) ([]IncidentRecord, error) {
	var records []IncidentRecord
	err := r.db.Where("run_id = ?", runID).Order("id").Find(&records).Error
	return records, err
}

// Close releases the database connection.
func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
