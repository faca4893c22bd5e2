package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// initFile points the global logger at a fresh JSON file with console
// output off and returns the file's path.
func initFile(t *testing.T, lvl string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playground.log")
	require.NoError(t, InitWithFileConfig(lvl, FileConfig{Path: path, MaxSizeMB: 10}, false))
	t.Cleanup(func() { SetLevel("info") })
	return path
}

// entries decodes every JSON line written so far.
func entries(t *testing.T, path string) []map[string]any {
	t.Helper()
	Sync()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e), "line %q", sc.Text())
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func messages(es []map[string]any) []string {
	var out []string
	for _, e := range es {
		out = append(out, e["msg"].(string))
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"error", []string{"readback failed"}},
		{"warn", []string{"wireframe unavailable", "readback failed"}},
		{"info", []string{"scene switched", "wireframe unavailable", "readback failed"}},
		{"debug", []string{"chunk built", "scene switched", "wireframe unavailable", "readback failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := initFile(t, tt.level)

			Debug("chunk built")
			Info("scene switched")
			Warn("wireframe unavailable")
			Error("readback failed")

			assert.Equal(t, tt.want, messages(entries(t, path)))
		})
	}
}

func TestJSONFileFields(t *testing.T) {
	path := initFile(t, "info")

	Named("scene").Info("surface configured",
		zap.Int("width", 320),
		zap.Duration("build", 1500*time.Microsecond))

	es := entries(t, path)
	require.Len(t, es, 1)
	e := es[0]
	assert.Equal(t, "INFO", e["level"])
	assert.Equal(t, "scene", e["logger"])
	assert.Equal(t, float64(320), e["width"])
	assert.Equal(t, float64(1), e["build"], "durations are written in whole milliseconds")
	assert.Contains(t, e["caller"], "logger_test.go")
	_, err := time.Parse("2006-01-02T15:04:05.000Z0700", e["time"].(string))
	assert.NoError(t, err)
}

func TestSetLevelAppliesToNamedLoggers(t *testing.T) {
	path := initFile(t, "info")

	scene := Named("scene")
	scene.Debug("hidden")
	SetLevel("debug")
	assert.Equal(t, "debug", Level())
	scene.Debug("visible")

	assert.Equal(t, []string{"visible"}, messages(entries(t, path)))
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "warn", parseLevel("warn").String())
	assert.Equal(t, "error", parseLevel("ERROR").String())
}

func TestSugarFollowsInit(t *testing.T) {
	path := initFile(t, "info")
	Sugar.Infow("frame", "fps", 60)

	es := entries(t, path)
	require.Len(t, es, 1)
	assert.Equal(t, float64(60), es[0]["fps"])
}

func TestDefaultFileConfig(t *testing.T) {
	c := DefaultFileConfig("x.log")
	assert.Equal(t, "x.log", c.Path)
	assert.Equal(t, 50, c.MaxSizeMB)
	assert.Equal(t, 3, c.MaxBackups)
	assert.Equal(t, 7, c.MaxAgeDays)
	assert.True(t, c.Compress)
}

func TestFileRotation(t *testing.T) {
	if testing.Short() {
		t.Skip("writes over a megabyte of logs")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.log")
	require.NoError(t, InitWithFileConfig("info", FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 2}, false))

	pad := strings.Repeat("x", 200)
	for i := 0; i < 8000; i++ {
		Sugar.Infof("frame %d %s", i, pad)
	}
	Sync()

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated int
	for _, f := range files {
		if f.Name() != "frames.log" && strings.HasPrefix(f.Name(), "frames-") {
			rotated++
		}
	}
	assert.FileExists(t, path)
	assert.GreaterOrEqual(t, rotated, 1)
}
