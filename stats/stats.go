package stats

import (
	"sort"

	gonumstat "gonum.org/v1/gonum/stat"
)

// PercentileValue pairs a requested percentile with its value.
type PercentileValue struct {
	P   float64
	Val float64
}

type AggregatedStatistics struct {
	Count       int
	Mean        float64
	Median      float64
	StdDev      float64
	Min         float64
	Max         float64
	Percentiles []PercentileValue
}

// StatsForSequence aggregates samples. Weights may be nil; otherwise
// weights[i] is the weight of unsortedSamples[i] (e.g. how long a load was
// held). StdDev is the population standard deviation. Percentiles above 1
// are read as 0-100 values.
func StatsForSequence(unsortedSamples []float64, weights []float64, percentiles []float64) *AggregatedStatistics {
	aggStats := &AggregatedStatistics{
		Count:       len(unsortedSamples),
		Percentiles: make([]PercentileValue, len(percentiles)),
	}
	if len(unsortedSamples) == 0 {
		return aggStats
	}

	// Sort the samples, carrying the weights along
	order := make([]int, len(unsortedSamples))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return unsortedSamples[order[i]] < unsortedSamples[order[j]]
	})
	sortedSamples := make([]float64, len(unsortedSamples))
	var sortedWeights []float64
	if weights != nil {
		sortedWeights = make([]float64, len(weights))
	}
	for i, eachIndex := range order {
		sortedSamples[i] = unsortedSamples[eachIndex]
		if weights != nil {
			sortedWeights[i] = weights[eachIndex]
		}
	}

	// Compute aggregates. Weights are durations, not frequencies, so the
	// deviation is the population one and doesn't depend on the time unit.
	aggStats.Mean, aggStats.StdDev = gonumstat.PopMeanStdDev(sortedSamples, sortedWeights)
	aggStats.Median = gonumstat.Quantile(0.5, gonumstat.Empirical, sortedSamples, sortedWeights)
	aggStats.Min = sortedSamples[0]
	aggStats.Max = sortedSamples[len(sortedSamples)-1]

	for eachPercentileIndex := range percentiles {
		percentileValue := percentiles[eachPercentileIndex]
		if percentileValue > 1.00 {
			percentileValue = percentileValue / 100
		}
		aggStats.Percentiles[eachPercentileIndex] = PercentileValue{
			P: percentiles[eachPercentileIndex],
			Val: gonumstat.Quantile(percentileValue,
				gonumstat.Empirical,
				sortedSamples,
				sortedWeights),
		}
	}
	return aggStats
}
