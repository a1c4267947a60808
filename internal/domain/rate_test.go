package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		percent bool
	}{
		{"0.065", "0.065", false},
		{"6.5%", "0.065", true},
		{" 390% ", "3.9", true},
		{"0", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRate(tt.in)
			require.NoError(t, err)
			assert.True(t, r.Equal(decimal.RequireFromString(tt.want)), "got %s", r)
			assert.Equal(t, tt.percent, r.WrittenAsPercent())
		})
	}

	_, err := ParseRate("six percent")
	assert.Error(t, err)
}

func TestRateYAML(t *testing.T) {
	var doc struct {
		APR  Rate `yaml:"apr"`
		Base Rate `yaml:"base"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("apr: 24.99%\nbase: 0.05\n"), &doc))
	assert.True(t, doc.APR.Equal(decimal.RequireFromString("0.2499")))
	assert.True(t, doc.Base.Equal(decimal.RequireFromString("0.05")))

	text, err := doc.APR.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "24.99%", string(text))

	text, err = NewRate(decimal.RequireFromString("0.05")).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0.05", string(text))
}
