package engine

import (
	"math"
	"testing"

	"github.com/spektr-org/vizdeck/dataset"
)

func TestValueCountsOrdering(t *testing.T) {
	col := dataset.CategoricalColumn("c", "b", "a", "a", "c", "b", "", "d")
	got := ValueCounts(col)

	want := []struct {
		label string
		count int
	}{
		{"b", 2}, {"a", 2}, {"c", 1}, {"d", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d slices, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Count != w.count {
			t.Errorf("slice %d = %+v, want %s x%d", i, got[i], w.label, w.count)
		}
	}
	if math.Abs(got[0].Percent-100.0/3) > 1e-9 {
		t.Errorf("percent = %v, want 33.33", got[0].Percent)
	}
}

func TestValueCountsEmpty(t *testing.T) {
	if got := ValueCounts(dataset.CategoricalColumn("c", "", "")); len(got) != 0 {
		t.Errorf("expected no slices for all-missing column, got %+v", got)
	}
}

func TestEqualWidthBins(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		n      int
		counts []int
		min    float64
		max    float64
	}{
		{"spread", []float64{0, 1, 2, 3, 4}, 2, []int{2, 3}, 0, 4},
		{"max lands in last bin", []float64{0, 10}, 10, []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 1}, 0, 10},
		{"constant", []float64{5, 5, 5}, 2, []int{0, 3}, 4.5, 5.5},
		{"nan ignored", []float64{1, math.NaN(), 3}, 2, []int{1, 1}, 1, 3},
		{"zero bins treated as one", []float64{1, 2}, 0, []int{2}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := EqualWidthBins(tt.values, tt.n)
			if len(bins) != len(tt.counts) {
				t.Fatalf("got %d bins, want %d", len(bins), len(tt.counts))
			}
			for i, c := range tt.counts {
				if bins[i].Count != c {
					t.Errorf("bin %d count = %d, want %d", i, bins[i].Count, c)
				}
			}
			if bins[0].Min != tt.min || bins[len(bins)-1].Max != tt.max {
				t.Errorf("range = [%v, %v], want [%v, %v]", bins[0].Min, bins[len(bins)-1].Max, tt.min, tt.max)
			}
		})
	}

	if EqualWidthBins([]float64{math.NaN()}, 3) != nil {
		t.Error("all-NaN input should produce no bins")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		values []float64
		want   FiveNumber
	}{
		{[]float64{1, 2, 3, 4}, FiveNumber{Min: 1, Q1: 1.75, Median: 2.5, Q3: 3.25, Max: 4, N: 4}},
		{[]float64{42}, FiveNumber{Min: 42, Q1: 42, Median: 42, Q3: 42, Max: 42, N: 1}},
		{[]float64{10, math.NaN(), 0}, FiveNumber{Min: 0, Q1: 2.5, Median: 5, Q3: 7.5, Max: 10, N: 2}},
	}

	for _, tt := range tests {
		got, err := Summarize(tt.values)
		if err != nil {
			t.Errorf("Summarize(%v) failed: %v", tt.values, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
		}
	}

	if _, err := Summarize(nil); err == nil {
		t.Error("Summarize(nil) should fail")
	}
}

func TestRoundTo2(t *testing.T) {
	if RoundTo2(66.6666) != 66.67 {
		t.Errorf("RoundTo2(66.6666) = %v", RoundTo2(66.6666))
	}
}
