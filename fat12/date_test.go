package fat12

import (
	"testing"
	"time"
)

func TestEncodeDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want uint16
	}{
		{"zero time", time.Time{}, 0},
		{"1980-01-01", time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC), 0x0021},
		{"2024-03-15", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), (44 << 9) | (3 << 5) | 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeDate(tt.t); got != tt.want {
				t.Errorf("EncodeDate(%v) = 0x%04X, want 0x%04X", tt.t, got, tt.want)
			}
		})
	}
}

func TestEncodeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want uint16
	}{
		{"zero time", time.Time{}, 0},
		{"midnight", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), 0},
		{"13:05:40", time.Date(2024, time.March, 15, 13, 5, 40, 0, time.UTC), (13 << 11) | (5 << 5) | (40 / 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeTime(tt.t); got != tt.want {
				t.Errorf("EncodeTime(%v) = 0x%04X, want 0x%04X", tt.t, got, tt.want)
			}
		})
	}
}
