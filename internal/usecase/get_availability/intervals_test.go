package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRanges(t *testing.T) {
	tests := []struct {
		name  string
		input []minuteRange
		want  []minuteRange
	}{
		{
			name:  "empty",
			input: []minuteRange{},
			want:  []minuteRange{},
		},
		{
			name:  "disjoint stay separate",
			input: []minuteRange{{540, 600}, {660, 720}},
			want:  []minuteRange{{540, 600}, {660, 720}},
		},
		{
			name:  "overlapping merge",
			input: []minuteRange{{540, 630}, {600, 720}},
			want:  []minuteRange{{540, 720}},
		},
		{
			name:  "touching merge",
			input: []minuteRange{{540, 600}, {600, 660}},
			want:  []minuteRange{{540, 660}},
		},
		{
			name:  "unsorted input",
			input: []minuteRange{{660, 720}, {540, 600}, {590, 665}},
			want:  []minuteRange{{540, 720}},
		},
		{
			name:  "empty ranges dropped",
			input: []minuteRange{{600, 600}, {700, 650}, {540, 600}},
			want:  []minuteRange{{540, 600}},
		},
		{
			name:  "contained absorbed",
			input: []minuteRange{{540, 720}, {600, 660}},
			want:  []minuteRange{{540, 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeRanges(tt.input))
		})
	}
}

func TestSubtractRanges(t *testing.T) {
	working := minuteRange{start: 540, end: 1080} // 09:00 - 18:00

	tests := []struct {
		name string
		busy []minuteRange
		want []minuteRange
	}{
		{
			name: "no busy means whole day free",
			busy: []minuteRange{},
			want: []minuteRange{{540, 1080}},
		},
		{
			name: "single busy splits day",
			busy: []minuteRange{{600, 660}},
			want: []minuteRange{{540, 600}, {660, 1080}},
		},
		{
			name: "busy at start",
			busy: []minuteRange{{540, 600}},
			want: []minuteRange{{600, 1080}},
		},
		{
			name: "busy at end",
			busy: []minuteRange{{1020, 1080}},
			want: []minuteRange{{540, 1020}},
		},
		{
			name: "fully booked",
			busy: []minuteRange{{540, 1080}},
			want: []minuteRange{},
		},
		{
			name: "adjacent busy leaves no gap between them",
			busy: []minuteRange{{600, 660}, {660, 720}},
			want: []minuteRange{{540, 600}, {720, 1080}},
		},
		{
			name: "busy outside working hours clamped away",
			busy: []minuteRange{{0, 480}, {1140, 1440}},
			want: []minuteRange{{540, 1080}},
		},
		{
			name: "busy overlapping day boundary clamped",
			busy: []minuteRange{{480, 600}, {1020, 1200}},
			want: []minuteRange{{600, 1020}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtractRanges(working, tt.busy))
		})
	}
}

func TestSubtractRanges_EmptyWorkingDay(t *testing.T) {
	assert.Empty(t, subtractRanges(minuteRange{start: 600, end: 600}, []minuteRange{{540, 660}}))
}

func TestMinuteRange_ClampTo(t *testing.T) {
	day := minuteRange{start: 0, end: 1440}

	clamped := minuteRange{start: -30, end: 1500}.clampTo(day)
	assert.Equal(t, minuteRange{start: 0, end: 1440}, clamped)

	clamped = minuteRange{start: 540, end: 600}.clampTo(day)
	assert.Equal(t, minuteRange{start: 540, end: 600}, clamped)
}
