package sqlitestorage

import (
	"time"

	"thermo-ca/internal/sims/thermal"
)

// Run is one simulation run.
type Run struct {
	ID        string `gorm:"primaryKey;size:36"`
	StartedAt time.Time
	Width     int
	Height    int
	Seed      int64
	Params    thermal.Params `gorm:"serializer:json"`
}

// TickSample is the conserved totals of one sampled tick.
type TickSample struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"index;size:36"`
	Tick       int64  `gorm:"index"`
	DurationMs float64
	Paused     bool
	Energy     float64
	Water      float64
	Gas        float64
	MaxWind    float64
}

// IncidentRecord is one instability raised during a run.
type IncidentRecord struct {
	ID      uint   `gorm:"primaryKey"`
	RunID   string `gorm:"index;size:36"`
	Tick    int64
	Kind    string `gorm:"size:32"`
	X       int
	Y       int
	Species int
	Value   float64
}

var models = []any{&Run{}, &TickSample{}, &IncidentRecord{}}
