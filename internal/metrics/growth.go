package metrics

import (
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// signalSeparator delimits growth signal tokens.
const signalSeparator = ", "

// SignalCount is one histogram bar.
type SignalCount struct {
	Signal string `json:"signal"`
	Count  int    `json:"count"`
}

// GrowthSignalList splits growth_signals into trimmed tokens, keeping
// duplicates and order. Unknown or "N/A" input yields an empty list.
func GrowthSignalList(growthSignals string) []string {
	signals := []string{}
	trimmed := strings.TrimSpace(growthSignals)
	if trimmed == "" || trimmed == types.NotAvailable {
		return signals
	}
	for _, token := range strings.Split(growthSignals, signalSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		signals = append(signals, token)
	}
	return signals
}

// BuildGrowthHistogram counts growth signal tokens by exact, case-sensitive
// equality. Bars appear in first-seen order.
func BuildGrowthHistogram(growthSignals string) []SignalCount {
	histogram := []SignalCount{}
	index := map[string]int{}
	for _, signal := range GrowthSignalList(growthSignals) {
		if i, ok := index[signal]; ok {
			histogram[i].Count++
			continue
		}
		index[signal] = len(histogram)
		histogram = append(histogram, SignalCount{Signal: signal, Count: 1})
	}
	return histogram
}
