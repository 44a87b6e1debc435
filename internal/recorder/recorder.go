package recorder

import (
	"time"

	"StockSignal/internal/model"
)

// Snapshot is the latest reading of one symbol in one run.
type Snapshot struct {
	RunAt    time.Time
	Symbol   string
	Date     time.Time
	Close    float64
	Row      model.IndicatorRow
	Signal   model.Signal   // empty when not enough history
	Forecast model.Forecast // empty when not enough history
}

// SnapshotFromAnalysis extracts the latest reading of an analysis.
func SnapshotFromAnalysis(runAt time.Time, an *model.Analysis) *Snapshot {
	latest, _ := an.Series.Latest()
	snap := &Snapshot{
		RunAt:  runAt,
		Symbol: an.Series.Symbol,
		Date:   latest.Date,
		Close:  latest.Close,
		Row:    an.Rows[len(an.Rows)-1],
	}
	if an.SignalErr == nil {
		snap.Signal = an.Signal
	}
	if an.ForecastErr == nil {
		snap.Forecast = an.Forecast
	}
	return snap
}

// Warning is a per-symbol problem of one run.
type Warning struct {
	RunAt   time.Time
	Symbol  string
	Kind    string
	Message string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordWarning(w *Warning) error
	Close() error
}
