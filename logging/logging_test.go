package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSetupJSON(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	logger := Setup(&buf, "warn", "json")
	logger.Info("dropped")
	logger.Warn("kept", "ways", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), 1)

	var rec map[string]any
	is.NoErr(json.Unmarshal([]byte(lines[0]), &rec))
	is.Equal(rec["msg"], "kept")
	is.Equal(rec["ways"], 3.0)
}

func TestSetupTextDefaults(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	logger := Setup(&buf, "", "")
	logger.Debug("hidden")
	logger.Info("shown")

	is.True(!strings.Contains(buf.String(), "hidden"))
	is.True(strings.Contains(buf.String(), "msg=shown"))
}

func TestSetupDebugAddsSource(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	logger := Setup(&buf, "DEBUG", "JSON")
	logger.Debug("visible")

	var rec map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &rec))
	is.Equal(rec["msg"], "visible")
	is.Equal(rec["app"], "roadexport")
	is.True(rec["source"] != nil)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		" Warn ":  "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"verbose": "INFO",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
