package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "partial overlap",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "09:30", End: "10:30"},
			want: true,
		},
		{
			name: "contained",
			a:    TimeRange{Start: "09:00", End: "12:00"},
			b:    TimeRange{Start: "10:00", End: "11:00"},
			want: true,
		},
		{
			name: "identical",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "09:00", End: "10:00"},
			want: true,
		},
		{
			name: "touching boundaries do not overlap",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "10:00", End: "11:00"},
			want: false,
		},
		{
			name: "disjoint",
			a:    TimeRange{Start: "09:00", End: "10:00"},
			b:    TimeRange{Start: "14:00", End: "15:00"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_IsValid(t *testing.T) {
	assert.True(t, TimeRange{Start: "09:00", End: "10:00"}.IsValid())
	assert.False(t, TimeRange{Start: "10:00", End: "10:00"}.IsValid())
	assert.False(t, TimeRange{Start: "11:00", End: "10:00"}.IsValid())
}

func TestTimeRange_Contains(t *testing.T) {
	outer := TimeRange{Start: "09:00", End: "18:00"}

	assert.True(t, outer.Contains(TimeRange{Start: "10:00", End: "11:00"}))
	assert.True(t, outer.Contains(TimeRange{Start: "09:00", End: "18:00"}))
	assert.False(t, outer.Contains(TimeRange{Start: "08:00", End: "10:00"}))
	assert.False(t, outer.Contains(TimeRange{Start: "17:00", End: "19:00"}))
}

func TestTimeRange_DurationMinutes(t *testing.T) {
	assert.Equal(t, 60, TimeRange{Start: "09:00", End: "10:00"}.DurationMinutes())
	assert.Equal(t, 90, TimeRange{Start: "10:30", End: "12:00"}.DurationMinutes())
}
