package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionsPresets(t *testing.T) {
	cases := map[string][2]int{
		"16:9": {1920, 1080},
		"4:3":  {1440, 1080},
		"1:1":  {1080, 1080},
		"9:16": {1080, 1920},
		"21:9": {2560, 1080},
	}
	for name, want := range cases {
		w, h := RenderSettings{AspectRatio: name}.Dimensions()
		assert.Equal(t, want[0], w, name)
		assert.Equal(t, want[1], h, name)
	}

	w, h := RenderSettings{AspectRatio: "bogus"}.Dimensions()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestBitrateKbpsPresets(t *testing.T) {
	assert.Equal(t, 1000, RenderSettings{Quality: "Low"}.BitrateKbps())
	assert.Equal(t, 2000, RenderSettings{Quality: "Medium"}.BitrateKbps())
	assert.Equal(t, 5000, RenderSettings{Quality: "High"}.BitrateKbps())
	assert.Equal(t, 10000, RenderSettings{Quality: "Very High"}.BitrateKbps())
	assert.Equal(t, 5000, RenderSettings{Quality: "???"}.BitrateKbps())
}

func TestQualityMultiplier(t *testing.T) {
	assert.Equal(t, 0.5, RenderSettings{Quality: "Low"}.QualityMultiplier())
	assert.Equal(t, 0.75, RenderSettings{Quality: "Medium"}.QualityMultiplier())
	assert.Equal(t, 1.0, RenderSettings{Quality: "High"}.QualityMultiplier())
	assert.Equal(t, 1.5, RenderSettings{Quality: "Very High"}.QualityMultiplier())
}

func TestSettingsValidate(t *testing.T) {
	assert.Error(t, RenderSettings{FrameRate: 0}.Validate())
	assert.Error(t, RenderSettings{FrameRate: -10}.Validate())
	assert.NoError(t, DefaultRenderSettings().Validate())
}

func TestPresetNameListsMatchTables(t *testing.T) {
	for _, name := range AspectRatioNames() {
		_, ok := aspectRatios[name]
		assert.True(t, ok, name)
	}
	for _, name := range QualityNames() {
		_, ok := qualityPresets[name]
		assert.True(t, ok, name)
	}
}
