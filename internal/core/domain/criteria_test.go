package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		in   string
		want Bound
	}{
		{in: "", want: Unset},
		{in: "   ", want: Unset},
		{in: "10000", want: At(10000)},
		{in: "20,000", want: At(20000)},
		{in: "abc", want: Unset},
		{in: "12k", want: Unset},
		{in: "-5", want: At(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBound(tt.in))
		})
	}
}

func TestBound_String(t *testing.T) {
	assert.Equal(t, "", Unset.String())
	assert.Equal(t, "42", At(42).String())
}

func TestVolumeFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter VolumeFilter
		volume int
		want   bool
	}{
		{name: "any", filter: VolumeFilter{Mode: VolumeAny}, volume: 0, want: true},
		{name: "preset at threshold", filter: VolumeFilter{Mode: VolumePreset, Threshold: 5000}, volume: 5000, want: true},
		{name: "preset below", filter: VolumeFilter{Mode: VolumePreset, Threshold: 5000}, volume: 4999, want: false},
		{name: "custom inside", filter: VolumeFilter{Mode: VolumeCustom, Min: At(10), Max: At(20)}, volume: 15, want: true},
		{name: "custom above max", filter: VolumeFilter{Mode: VolumeCustom, Min: At(10), Max: At(20)}, volume: 21, want: false},
		{name: "custom below min", filter: VolumeFilter{Mode: VolumeCustom, Min: At(10), Max: At(20)}, volume: 9, want: false},
		{name: "custom open max", filter: VolumeFilter{Mode: VolumeCustom, Min: At(10)}, volume: 1 << 30, want: true},
		{name: "custom open both", filter: VolumeFilter{Mode: VolumeCustom}, volume: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.volume))
		})
	}
}

func TestVolumeFilter_IsActive(t *testing.T) {
	assert.False(t, VolumeFilter{Mode: VolumeAny}.IsActive())
	assert.True(t, VolumeFilter{Mode: VolumePreset, Threshold: 1000}.IsActive())
	assert.False(t, VolumeFilter{Mode: VolumeCustom}.IsActive())
	assert.True(t, VolumeFilter{Mode: VolumeCustom, Max: At(5)}.IsActive())
}

func TestParseBrandClass(t *testing.T) {
	b, err := ParseBrandClass("Brand")
	require.NoError(t, err)
	assert.Equal(t, BrandClassBrand, b)

	for _, in := range []string{"non-brand", "nonbrand", "NON_BRAND"} {
		b, err = ParseBrandClass(in)
		require.NoError(t, err)
		assert.Equal(t, BrandClassNonBrand, b)
	}

	_, err = ParseBrandClass("generic")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDefaultCriteria_HasNoConstraints(t *testing.T) {
	c := DefaultCriteria()

	assert.Empty(t, c.Active())
	assert.True(t, c.Brand.IsAll())
	assert.True(t, c.SearchTypes.IsAll())
	assert.True(t, c.Competition.IsAll())
	assert.Equal(t, VolumeAny, c.Volume.Mode)
}

func TestFilterCriteria_BuildersReturnCopies(t *testing.T) {
	base := DefaultCriteria()
	next := base.WithText("  Shoes ").ToggleBrand(BrandClassBrand).WithPresetVolume(5000)

	assert.Empty(t, base.Active())
	assert.Equal(t, "shoes", next.Term())
	assert.Equal(t, []BrandClass{BrandClassBrand}, next.Brand.Values())
	assert.Equal(t, VolumePreset, next.Volume.Mode)

	custom := next.WithCustomVolume(At(1), Unset)
	assert.Equal(t, VolumeCustom, custom.Volume.Mode)
	assert.Equal(t, VolumeAny, custom.WithoutVolume().Volume.Mode)
}

func TestFilterCriteria_Active(t *testing.T) {
	c := DefaultCriteria().
		WithText("Shoes").
		WithCustomVolume(At(10000), At(20000)).
		ToggleBrand(BrandClassBrand).
		ToggleSearchType(SearchTypeShopping).
		ToggleCompetition(CompetitionLow).
		ToggleCompetition(CompetitionHigh)

	assert.Equal(t, []string{
		`text contains "shoes"`,
		"volume 10000-20000",
		"brand: brand",
		"type: Shopping",
		"competition: Low,High",
	}, c.Active())

	assert.Equal(t, []string{"volume >= 5"}, DefaultCriteria().WithCustomVolume(At(5), Unset).Active())
	assert.Equal(t, []string{"volume <= 7"}, DefaultCriteria().WithCustomVolume(Unset, At(7)).Active())
	assert.Equal(t, []string{"volume >= 1000"}, DefaultCriteria().WithPresetVolume(1000).Active())
}
