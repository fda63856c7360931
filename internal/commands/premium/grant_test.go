package premium

import (
	"testing"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		choice  string
		seconds int64
		kind    models.DurationKind
		value   int64
		wantErr bool
	}{
		{"1d", 0, models.DurationDays, 1, false},
		{"3d", 0, models.DurationDays, 3, false},
		{"7d", 0, models.DurationDays, 7, false},
		{"1m", 0, models.DurationMonths, 1, false},
		{"3m", 0, models.DurationMonths, 3, false},
		{"1y", 0, models.DurationYears, 1, false},
		{"lifetime", 0, models.DurationLifetime, 0, false},
		{"custom", 3600, models.DurationSeconds, 3600, false},
		{"custom", 0, "", 0, true},
		{"custom", -5, "", 0, true},
		{"2w", 0, "", 0, true},
		{"", 0, "", 0, true},
	}

	for _, tt := range tests {
		kind, value, err := parseDuration(tt.choice, tt.seconds)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDuration(%q, %d) error = %v, wantErr %v", tt.choice, tt.seconds, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if kind != tt.kind || value != tt.value {
			t.Errorf("parseDuration(%q, %d) = (%v, %d), want (%v, %d)", tt.choice, tt.seconds, kind, value, tt.kind, tt.value)
		}
	}
}
