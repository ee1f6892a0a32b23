package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProfile() *FarmerProfile {
	return &FarmerProfile{
		FarmerID:                  "F001",
		Name:                      "Test Farmer",
		Region:                    "Shirvan",
		FarmType:                  "grain",
		CropType:                  "wheat",
		FarmSizeHectares:          45,
		YearsExperience:           12,
		PreviousBNPLCount:         3,
		PreviousBNPLStatus:        "all_on_time",
		AverageMonthlyRevenue:     2800,
		SeasonalRevenueVolatility: VolatilityLow,
		LandOwnership:             true,
		HasIrrigation:             true,
		RequestedAmount:           4500,
	}
}

func TestParseBNPLHistory(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		status string
		want   BNPLHistory
	}{
		{
			name:   "no prior loans regardless of status",
			count:  0,
			status: "all_on_time",
			want:   BNPLHistory{Kind: BNPLHistoryNone, Count: 0},
		},
		{
			name:   "clean record",
			count:  3,
			status: "all_on_time",
			want:   BNPLHistory{Kind: BNPLHistoryAllOnTime, Count: 3},
		},
		{
			name:   "composite record with embedded counts",
			count:  5,
			status: "2_late_3_on_time",
			want:   BNPLHistory{Kind: BNPLHistoryMixed, Count: 5, LateCount: 2, OnTimeCount: 3},
		},
		{
			name:   "segments without digit prefixes count as one",
			count:  2,
			status: "late_on_time",
			want:   BNPLHistory{Kind: BNPLHistoryMixed, Count: 2, LateCount: 1, OnTimeCount: 1},
		},
		{
			name:   "single late payment",
			count:  1,
			status: "1_late",
			want:   BNPLHistory{Kind: BNPLHistoryMixed, Count: 1, LateCount: 1},
		},
		{
			name:   "on-time without counts",
			count:  2,
			status: "mostly_on_time",
			want:   BNPLHistory{Kind: BNPLHistoryOnTime, Count: 2},
		},
		{
			name:   "unrecognized status",
			count:  1,
			status: "settled",
			want:   BNPLHistory{Kind: BNPLHistoryUnknown, Count: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBNPLHistory(tt.count, tt.status))
		})
	}
}

func TestNormalizeVolatility(t *testing.T) {
	assert.Equal(t, VolatilityVeryHigh, NormalizeVolatility("Very High"))
	assert.Equal(t, VolatilityVeryHigh, NormalizeVolatility("very-high"))
	assert.Equal(t, VolatilityLow, NormalizeVolatility("  LOW "))
	// Unknown vocabulary passes through for the scorer's fallback
	assert.Equal(t, Volatility("erratic"), NormalizeVolatility("Erratic"))
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile(validProfile()))

	tests := []struct {
		name    string
		mutate  func(*FarmerProfile)
		wantErr error
	}{
		{"empty farmer id", func(p *FarmerProfile) { p.FarmerID = "  " }, ErrEmptyFarmerID},
		{"empty region", func(p *FarmerProfile) { p.Region = "" }, ErrEmptyRegion},
		{"empty farm type", func(p *FarmerProfile) { p.FarmType = "" }, ErrEmptyFarmType},
		{"empty crop type", func(p *FarmerProfile) { p.CropType = "" }, ErrEmptyCropType},
		{"zero farm size", func(p *FarmerProfile) { p.FarmSizeHectares = 0 }, ErrInvalidFarmSize},
		{"negative experience", func(p *FarmerProfile) { p.YearsExperience = -1 }, ErrInvalidExperience},
		{"negative bnpl count", func(p *FarmerProfile) { p.PreviousBNPLCount = -1 }, ErrInvalidBNPLCount},
		{"negative revenue", func(p *FarmerProfile) { p.AverageMonthlyRevenue = -100 }, ErrInvalidRevenue},
		{"negative requested amount", func(p *FarmerProfile) { p.RequestedAmount = -1 }, ErrInvalidRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			assert.ErrorIs(t, ValidateProfile(p), tt.wantErr)
		})
	}

	t.Run("unknown categorical values are accepted", func(t *testing.T) {
		p := validProfile()
		p.Region = "Atlantis"
		p.FarmType = "aquaponic"
		p.SeasonalRevenueVolatility = "erratic"
		p.PreviousBNPLStatus = "settled"
		assert.NoError(t, ValidateProfile(p))
	})
}
