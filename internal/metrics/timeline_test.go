package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/types"
)

func TestBuildFundingTimeline(t *testing.T) {
	rounds := []types.FundingRound{
		{Type: types.NewScalar("Seed"), Amount: types.NewScalar("$1M")},
		{Type: types.NewScalar("Series A"), Amount: types.NewScalar("$5M")},
		{Type: types.NewScalar("Series B"), Amount: types.NewScalar("$20M")},
	}

	timeline := BuildFundingTimeline(rounds)
	require.Len(t, timeline, 3)
	assert.Equal(t, TimelineEntry{RoundLabel: "Seed", Amount: "$1M", Year: 2020}, timeline[0])
	assert.Equal(t, TimelineEntry{RoundLabel: "Series A", Amount: "$5M", Year: 2021}, timeline[1])
	assert.Equal(t, TimelineEntry{RoundLabel: "Series B", Amount: "$20M", Year: 2022}, timeline[2])
}

func TestBuildFundingTimeline_Defaults(t *testing.T) {
	timeline := BuildFundingTimeline([]types.FundingRound{
		{Amount: types.NewScalar("$3M")},
		{Type: types.NewScalar("Series A")},
	})

	require.Len(t, timeline, 2)
	assert.Equal(t, "Round 1", timeline[0].RoundLabel)
	assert.Equal(t, "$3M", timeline[0].Amount)
	assert.Equal(t, "Series A", timeline[1].RoundLabel)
	assert.Equal(t, "N/A", timeline[1].Amount)
	assert.Equal(t, 2021, timeline[1].Year)
}

func TestBuildFundingTimeline_Empty(t *testing.T) {
	assert.Empty(t, BuildFundingTimeline(nil))
	assert.NotNil(t, BuildFundingTimeline(nil))
}

func TestBuildFundingTimeline_YearIgnoresRealDates(t *testing.T) {
	a, err := types.ParseProfile([]byte(`{"funding_rounds": [{"type": "Seed", "amount": "$1M", "date": "2011-04-01"}]}`))
	require.NoError(t, err)
	b, err := types.ParseProfile([]byte(`{"funding_rounds": [{"type": "Seed", "amount": "$1M", "date": "2023-09-12"}]}`))
	require.NoError(t, err)

	assert.Equal(t, BuildFundingTimeline(a.FundingRounds()), BuildFundingTimeline(b.FundingRounds()))
	assert.Equal(t, 2020, BuildFundingTimeline(a.FundingRounds())[0].Year)
}
