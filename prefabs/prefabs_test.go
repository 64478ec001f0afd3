package prefabs

import (
	"image/color"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuning(t *testing.T) {
	tuning, err := LoadTuning()
	require.NoError(t, err)

	assert.Equal(t, 150.0, tuning.Player.RunSpeed)
	assert.Equal(t, 350.0, tuning.Player.JumpSpeed)
	assert.Greater(t, tuning.Player.ChimneySpeed, 0.0)
	assert.Less(t, tuning.Player.ChimneyAlpha, 1.0)

	w, h := tuning.Player.Sprite.Footprint()
	assert.InDelta(t, 24.0, w, 1e-9)
	assert.InDelta(t, 43.2, h, 1e-9)

	assert.Greater(t, tuning.Present.Count, 0)
	assert.LessOrEqual(t, tuning.Present.Throw.LaunchMin, tuning.Present.Throw.LaunchMax)
	assert.LessOrEqual(t, tuning.Present.Drop.LaunchMin, tuning.Present.Drop.LaunchMax)
	assert.Equal(t, 100, tuning.Jolly.Start)
	assert.Greater(t, tuning.World.Gravity, 0.0)
}

func TestFootprintDefaultsToSprite(t *testing.T) {
	w, h := SpriteSpec{Width: 10, Height: 20}.Footprint()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, h)
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := LoadSpec[JollySpec]("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"house.tengo", "scripts/house.tengo", "prefabs/scripts/house.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "on_event")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ParseHexColor("10203040")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), c.A)

	_, err = ParseHexColor("#12")
	assert.Error(t, err)
	_, err = ParseHexColor("#zz0000")
	assert.Error(t, err)
}

func TestDecodeProps(t *testing.T) {
	props, err := DecodeProps[ScriptZoneProps](map[string]any{
		"event": "milk_and_cookies",
		"once":  true,
		"color": "#f5f5dc",
	})
	require.NoError(t, err)
	assert.Equal(t, "milk_and_cookies", props.Event)
	assert.True(t, props.Once)
	assert.Equal(t, HexColor("#f5f5dc"), props.Color)

	_, err = DecodeProps[ScriptZoneProps](map[string]any{"color": "red"})
	assert.Error(t, err)

	empty, err := DecodeProps[ScriptZoneProps](nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Event)
}

func TestClassifyChanges(t *testing.T) {
	cases := []struct {
		name   string
		event  fsnotify.Event
		ok     bool
		script bool
	}{
		{name: "yaml write", event: fsnotify.Event{Name: "prefabs/player.yaml", Op: fsnotify.Write}, ok: true},
		{name: "script create", event: fsnotify.Event{Name: "prefabs/scripts/house.tengo", Op: fsnotify.Create}, ok: true, script: true},
		{name: "chmod ignored", event: fsnotify.Event{Name: "prefabs/player.yaml", Op: fsnotify.Chmod}},
		{name: "other file", event: fsnotify.Event{Name: "prefabs/notes.txt", Op: fsnotify.Write}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			change, ok := classify(tc.event)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.event.Name, change.Path)
				assert.Equal(t, tc.script, change.Script)
			}
		})
	}
}
