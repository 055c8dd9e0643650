package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/callebjorkell/lcd1602/internal/pins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
pins:
  power: GPIO5
  enable: GPIO6
glyphs:
  - slot: 1
    rows: [0x04, 0x0e, 0x15, 0x04, 0x04, 0x04, 0x04, 0x00]
`

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(testConfig))
	require.NoError(t, err)

	names := c.PinNames()
	assert.Equal(t, "GPIO5", names[pins.Power])
	assert.Equal(t, "GPIO6", names[pins.Enable])
	assert.Equal(t, "GPIO4", names[pins.RegisterSelect])
	assert.Equal(t, "GPIO24", names[pins.DB7])

	require.Len(t, c.Glyphs, 1)
	assert.Equal(t, uint8(1), c.Glyphs[0].Slot)
	assert.Equal(t, [8]byte{0x04, 0x0e, 0x15, 0x04, 0x04, 0x04, 0x04, 0x00}, c.Glyphs[0].Pattern())
}

func TestParseConfig_Errors(t *testing.T) {
	tt := []struct {
		name    string
		content string
		err     string
	}{
		{
			"slot out of range",
			"glyphs:\n  - slot: 8\n    rows: [0, 0, 0, 0, 0, 0, 0, 0]\n",
			"slot of glyph 0 must be 0-7, got 8",
		},
		{
			"short glyph",
			"glyphs:\n  - slot: 2\n    rows: [1, 2, 3]\n",
			"glyph 0 must have 8 rows, got 3",
		},
		{
			"shared pin",
			"pins:\n  db4: GPIO4\n",
			"GPIO4 is used for both RS and DB4",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.content))
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := parseConfig([]byte("glyphs:\n  - slot: 300\n"))
	assert.Error(t, err)
}

func TestReadConfig_Missing(t *testing.T) {
	c, err := readConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "GPIO27", c.Pins.Power)
	assert.Empty(t, c.Glyphs)
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcd1602.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	c, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "GPIO5", c.Pins.Power)
}
