// Package metrics exports generation statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baldhumanity/neatwork/neat"
)

// Reporter is a neat.Reporter that keeps Prometheus collectors up to date.
type Reporter struct {
	Generation     prometheus.Gauge
	BestScore      prometheus.Gauge
	CurrentBest    prometheus.Gauge
	MeanScore      prometheus.Gauge
	MedianScore    prometheus.Gauge
	WorstScore     prometheus.Gauge
	ScoreStdev     prometheus.Gauge
	PopulationSize prometheus.Gauge
	SpeciesCount   prometheus.Gauge
	SpeciesEvents  *prometheus.CounterVec
	Champions      prometheus.Counter
	StepSeconds    prometheus.Histogram
}

// NewReporter creates the collectors and registers them with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func NewReporter(reg prometheus.Registerer) (*Reporter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Reporter{
		Generation:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_generation", Help: "Number of completed generations."}),
		BestScore:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_best_score", Help: "Score of the champion network."}),
		CurrentBest:    prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_current_best_score", Help: "Best score in the current population."}),
		MeanScore:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_mean_score", Help: "Mean score of the current population."}),
		MedianScore:    prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_median_score", Help: "Median score of the current population."}),
		WorstScore:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_worst_score", Help: "Lowest score in the current population."}),
		ScoreStdev:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_score_stdev", Help: "Standard deviation of the current population scores."}),
		PopulationSize: prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_population_size", Help: "Number of organisms in the population."}),
		SpeciesCount:   prometheus.NewGauge(prometheus.GaugeOpts{Name: "neat_species", Help: "Number of species."}),
		SpeciesEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "neat_species_events_total",
			Help: "Species lifecycle events by kind.",
		}, []string{"event"}),
		Champions: prometheus.NewCounter(prometheus.CounterOpts{Name: "neat_champions_total", Help: "Number of times the champion was replaced."}),
		StepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "neat_step_duration_seconds",
			Help:    "Duration of a generation step.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	collectors := []prometheus.Collector{
		r.Generation, r.BestScore, r.CurrentBest, r.MeanScore, r.MedianScore,
		r.WorstScore, r.ScoreStdev, r.PopulationSize, r.SpeciesCount, r.SpeciesEvents, r.Champions, r.StepSeconds,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Report implements neat.Reporter.
func (r *Reporter) Report(stats neat.GenerationStats) {
	r.Generation.Set(float64(stats.Generation))
	r.BestScore.Set(stats.BestScore)
	r.CurrentBest.Set(stats.CurrentBest)
	r.MeanScore.Set(stats.MeanScore)
	r.MedianScore.Set(stats.MedianScore)
	r.WorstScore.Set(stats.WorstScore)
	r.ScoreStdev.Set(stats.ScoreStdev)
	r.PopulationSize.Set(float64(stats.PopulationSize))
	r.SpeciesCount.Set(float64(len(stats.Species)))
	r.SpeciesEvents.WithLabelValues("created").Add(float64(stats.SpeciesCreated))
	r.SpeciesEvents.WithLabelValues("removed_weak").Add(float64(stats.WeakRemoved))
	r.SpeciesEvents.WithLabelValues("removed_stale").Add(float64(stats.StaleRemoved))
	if stats.ChampionFound {
		r.Champions.Inc()
	}
	r.StepSeconds.Observe(stats.Duration.Seconds())
}
