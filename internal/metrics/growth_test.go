package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGrowthHistogram(t *testing.T) {
	tests := []struct {
		name    string
		signals string
		want    []SignalCount
	}{
		{
			name:    "counts in first-seen order",
			signals: "Hiring, Hiring, Funding",
			want:    []SignalCount{{"Hiring", 2}, {"Funding", 1}},
		},
		{
			name:    "not available",
			signals: "N/A",
			want:    []SignalCount{},
		},
		{
			name:    "absent",
			signals: "",
			want:    []SignalCount{},
		},
		{
			name:    "case variants are distinct",
			signals: "Hiring, hiring, HIRING",
			want:    []SignalCount{{"Hiring", 1}, {"hiring", 1}, {"HIRING", 1}},
		},
		{
			name:    "tokens are trimmed",
			signals: " Expansion ,  Expansion, Funding",
			want:    []SignalCount{{"Expansion", 2}, {"Funding", 1}},
		},
		{
			name:    "comma without space is one token",
			signals: "Hiring,Funding, Funding",
			want:    []SignalCount{{"Hiring,Funding", 1}, {"Funding", 1}},
		},
		{
			name:    "empty tokens are dropped",
			signals: "Hiring, , Hiring, ",
			want:    []SignalCount{{"Hiring", 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildGrowthHistogram(tt.signals))
		})
	}
}

func TestGrowthSignalList_KeepsDuplicates(t *testing.T) {
	assert.Equal(t, []string{"Hiring", "Hiring", "Funding"}, GrowthSignalList("Hiring, Hiring, Funding"))
	assert.Empty(t, GrowthSignalList(" N/A "))
}
