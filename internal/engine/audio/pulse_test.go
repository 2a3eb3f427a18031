package audio

import (
	"testing"

	"github.com/matryer/is"
)

// Trimmed `pactl -f json list sink-inputs` output.
const samplePactl = `[
  {
    "index": 42,
    "driver": "protocol-native.c",
    "mute": false,
    "properties": {
      "application.name": "Spotify",
      "application.process.binary": "spotify",
      "application.process.id": "1234"
    }
  },
  {
    "index": 57,
    "driver": "protocol-native.c",
    "mute": false,
    "properties": {
      "application.name": "Firefox"
    }
  }
]`

func TestParseSinkInputs(t *testing.T) {
	is := is.New(t)

	inputs, err := parseSinkInputs([]byte(samplePactl))
	is.NoErr(err)
	is.Equal(len(inputs), 2)
	is.Equal(inputs[0].Index, 42)
	is.Equal(inputs[0].processName(), "spotify")
	is.Equal(inputs[1].processName(), "Firefox") // falls back to application.name
}

func TestParseSinkInputsRejectsGarbage(t *testing.T) {
	is := is.New(t)

	_, err := parseSinkInputs([]byte("Sink Input #42\n\tDriver: ..."))
	is.True(err != nil) // non-JSON pactl output (missing -f json) must error, not misparse
}

func TestSinkInputMatchesCaseInsensitive(t *testing.T) {
	is := is.New(t)

	inputs, err := parseSinkInputs([]byte(samplePactl))
	is.NoErr(err)
	is.True(inputs[0].matches("Spotify"))
	is.True(inputs[0].matches("SPOTIFY"))
	is.True(!inputs[0].matches("vlc"))
	is.True(inputs[1].matches("firefox"))
}

func TestHasSession(t *testing.T) {
	is := is.New(t)

	names := []string{"spotify", "Firefox"}
	is.True(HasSession(names, "Spotify"))
	is.True(HasSession(names, "firefox"))
	is.True(!HasSession(names, "vlc"))
	is.True(!HasSession(nil, "spotify"))
}
