package metrics

import (
	"fmt"

	"github.com/jonathan/leadgen/internal/types"
)

// TimelineBaseYear is the synthetic year assigned to the first funding round.
const TimelineBaseYear = 2020

// TimelineEntry is one funding round placed on the timeline.
type TimelineEntry struct {
	RoundLabel string `json:"round_label"`
	Amount     string `json:"amount"`
	Year       int    `json:"year"`
}

// BuildFundingTimeline lays rounds out one year apart starting at 2020.
//
// The year is positional only. Profiles carry no reliable round dates, so two
// profiles with the same rounds render the same timeline whatever their real
// funding history.
func BuildFundingTimeline(rounds []types.FundingRound) []TimelineEntry {
	timeline := make([]TimelineEntry, 0, len(rounds))
	for i, round := range rounds {
		timeline = append(timeline, TimelineEntry{
			RoundLabel: round.Type.Or(fmt.Sprintf("Round %d", i+1)),
			Amount:     round.Amount.String(),
			Year:       TimelineBaseYear + i,
		})
	}
	return timeline
}
