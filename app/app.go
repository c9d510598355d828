package app

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mweagle/goloadgen/config"
	"github.com/mweagle/goloadgen/cpuload"
	"github.com/mweagle/goloadgen/modulation"
	"github.com/mweagle/goloadgen/scenario"
	"github.com/mweagle/goloadgen/series"
	"github.com/mweagle/goloadgen/stats"
)

// DefaultPercentiles are reported for every generated or loaded scenario.
var DefaultPercentiles = []float64{50, 95}

func aggregatedStatsFormatter(aggStats *stats.AggregatedStatistics) string {
	label := fmt.Sprintf("μ=%.2f, σ=%.2f, min=%.2f, max=%.2f",
		aggStats.Mean,
		aggStats.StdDev,
		aggStats.Min,
		aggStats.Max)
	if len(aggStats.Percentiles) != 0 {
		value := ""
		for i := 0; i != len(aggStats.Percentiles); i++ {
			percentilePair := aggStats.Percentiles[i]
			pVal := percentilePair.P
			if pVal <= 1 {
				pVal *= 100
			}
			if math.Floor(pVal) == pVal {
				value += fmt.Sprintf("p%.0f=%.2f, ", pVal, percentilePair.Val)
			} else {
				value += fmt.Sprintf("p%.2f=%.2f, ", pVal, percentilePair.Val)
			}
		}
		value = strings.TrimSuffix(value, ", ")
		label = fmt.Sprintf("%s (%s)", label, value)
	}
	return label
}

// /////////////////////////////////////////////////////////////////////////////
//
// TYPES
//
// /////////////////////////////////////////////////////////////////////////////

// GenerationResults describes one generated scenario.
type GenerationResults struct {
	Load *cpuload.CPULoad
	// Complete is false when generation stopped before the horizon
	Complete   bool
	Stats      *stats.AggregatedStatistics
	OutputFile string
	PlotFile   string
}

// SeriesStats aggregates the loads of ts, weighting each by how long it was
// held.
func SeriesStats(ts *series.TimeSerie, percentiles []float64) *stats.AggregatedStatistics {
	return stats.StatsForSequence(ts.Values(), ts.Durations(), percentiles)
}

// GenerateScenario builds the series described by cfg, fills it, applies the
// optional modulation and writes the scenario file, then the optional plot.
func GenerateScenario(cfg *config.Config, log *slog.Logger) (*GenerationResults, error) {
	load, loadErr := cpuload.FromConfig(cfg, cfg.Source(), log)
	if loadErr != nil {
		return nil, loadErr
	}
	complete := load.Fill(log)

	if len(cfg.Modulation) != 0 {
		modFunc, modFuncErr := modulation.Parse(cfg.Modulation)
		if modFuncErr != nil {
			return nil, modFuncErr
		}
		series.Compose(load.TimeSerie, modFunc)
		log.Debug("Applied modulation", "function", cfg.Modulation)
	}

	writeErr := scenario.WriteFile(cfg.Output, load, cfg.Repeat, cfg.Indent)
	if writeErr != nil {
		return nil, writeErr
	}
	log.Info("Created scenario file",
		"path", cfg.Output,
		"segments", load.Len(),
		"elapsed", load.Elapsed(),
		"complete", complete)

	results := &GenerationResults{
		Load:       load,
		Complete:   complete,
		Stats:      SeriesStats(load.TimeSerie, DefaultPercentiles),
		OutputFile: cfg.Output,
	}
	if len(cfg.Plot) != 0 {
		title := fmt.Sprintf("CPU load (%s)", strings.ReplaceAll(load.Kind(), "_", " "))
		plotErr := PlotTimeSerie(load, title, cfg.Plot, log)
		if plotErr != nil {
			return nil, plotErr
		}
		results.PlotFile = cfg.Plot
	}
	log.Info("Series statistics", "load", aggregatedStatsFormatter(results.Stats))
	return results, nil
}

// ScenarioSummary describes a scenario file read back from disk.
type ScenarioSummary struct {
	Path          string
	Repeat        int
	Slots         int
	TotalDuration float64
	Stats         *stats.AggregatedStatistics
}

// SummarizeScenarioFile loads path and aggregates its first core's load.
func SummarizeScenarioFile(path string, log *slog.Logger) (*ScenarioSummary, error) {
	loaded, loadedErr := scenario.ReadFile(path)
	if loadedErr != nil {
		return nil, loadedErr
	}
	summary := &ScenarioSummary{
		Path:          path,
		Repeat:        loaded.Repeat,
		Slots:         len(loaded.Slots),
		TotalDuration: loaded.TotalDuration(),
		Stats:         stats.StatsForSequence(loaded.Loads(), loaded.Durations(), DefaultPercentiles),
	}
	log.Info("Scenario summary",
		"path", path,
		"repeat", summary.Repeat,
		"slots", summary.Slots,
		"duration", summary.TotalDuration)
	if summary.Slots != 0 {
		log.Info("Scenario statistics", "load", aggregatedStatsFormatter(summary.Stats))
	}
	return summary, nil
}
