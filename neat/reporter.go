package neat

import "log/slog"

// Reporter receives a summary after every generation step.
type Reporter interface {
	Report(stats GenerationStats)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(stats GenerationStats)

// Report calls f(stats).
func (f ReporterFunc) Report(stats GenerationStats) { f(stats) }

// LogReporter writes one structured line per generation, plus a debug line
// per species.
type LogReporter struct {
	Logger *slog.Logger
}

// NewLogReporter returns a reporter writing to logger, or to slog.Default()
// when logger is nil.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{Logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(stats GenerationStats) {
	r.Logger.Info("generation complete",
		slog.String("run_id", stats.RunID),
		slog.Int("generation", stats.Generation),
		slog.Int("population", stats.PopulationSize),
		slog.Int("species", len(stats.Species)),
		slog.Float64("best_score", stats.BestScore),
		slog.Float64("current_best", stats.CurrentBest),
		slog.Float64("mean_score", stats.MeanScore),
		slog.Float64("median_score", stats.MedianScore),
		slog.Float64("worst_score", stats.WorstScore),
		slog.Float64("score_stdev", stats.ScoreStdev),
		slog.Int("weak_removed", stats.WeakRemoved),
		slog.Int("stale_removed", stats.StaleRemoved),
		slog.Duration("duration", stats.Duration),
	)
	if stats.ChampionFound {
		r.Logger.Info("new champion", slog.Int("generation", stats.Generation), slog.Float64("score", stats.BestScore))
	}
	for _, sp := range stats.Species {
		r.Logger.Debug("species",
			slog.Int("key", sp.Key),
			slog.Int("size", sp.Size),
			slog.Float64("score", sp.Score),
			slog.Float64("best_score", sp.BestScore),
			slog.Int("staleness", sp.Staleness),
			slog.Float64("mean_genes", sp.MeanGenes),
			slog.Float64("mean_nodes", sp.MeanNodes),
		)
	}
}
