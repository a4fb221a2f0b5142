package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-misri/internal/config"
	"github.com/tartampluch/go-misri/internal/engine"
	"github.com/tartampluch/go-misri/internal/format"
	"golang.org/x/text/language"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// execute runs the CLI with "today" pinned to 2024-01-01 (Misri 1445-06-20).
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	a := &app{clock: fixedClock{now: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)}}
	t.Cleanup(func() {
		a.close()
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	})

	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	out, err := execute(t, config.CmdConvert, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01\t20th Jumadal-Ukhra 1445\t٢٠ جمادى الأخرى ١٤٤٥\n", out)
}

func TestConvert_DefaultsToToday(t *testing.T) {
	out, err := execute(t, config.CmdConvert)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2024-01-01\t20th Jumadal-Ukhra 1445"), out)
}

func TestConvert_JSON(t *testing.T) {
	out, err := execute(t, config.CmdConvert, "--"+config.FlagJSON, "2023-07-18")
	require.NoError(t, err)

	var d format.Display
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, engine.MisriDate{Year: 1445, Month: 1, Day: 1}, d.Date())
	assert.Equal(t, "1st Moharram-ul-Haraam 1445", d.FormattedEn)
}

func TestConvert_InvalidDate(t *testing.T) {
	_, err := execute(t, config.CmdConvert, "2024-02-30")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidDateFormat)

	_, err = execute(t, config.CmdConvert, "2024-01-01", "extra")
	assert.Error(t, err)
}

func TestMonth(t *testing.T) {
	out, err := execute(t, config.CmdMonth, "1445", "6")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Jumadal-Ukhra 1445", lines[0])
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, strings.Fields(lines[1]))

	// 1445-06-01 falls on a Wednesday.
	assert.Equal(t, strings.Repeat(" ", 18)+"     1     2     3     4", lines[2])
	assert.Equal(t, []string{"26", "27", "28", "29"}, strings.Fields(lines[6]))
}

func TestMonth_DefaultsToCurrent(t *testing.T) {
	out, err := execute(t, config.CmdMonth)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Jumadal-Ukhra 1445\n"), out)
}

func TestMonth_Arabic(t *testing.T) {
	out, err := execute(t, config.CmdMonth, "--"+config.FlagArabic, "1445", "6")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "جمادى الأخرى ١٤٤٥\n"), out)
	assert.Contains(t, out, "٢٩")
	assert.Contains(t, out, "الأحد")
}

func TestMonth_InvalidArguments(t *testing.T) {
	for name, args := range map[string][]string{
		"one argument":   {"1445"},
		"three":          {"1445", "6", "1"},
		"not a number":   {"year", "6"},
		"month too high": {"1445", "13"},
		"month zero":     {"1445", "0"},
		"year zero":      {"0", "1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, append([]string{config.CmdMonth}, args...)...)
			assert.Error(t, err)
		})
	}
}

func TestICS(t *testing.T) {
	out, err := execute(t, config.CmdICS, "1445", "6")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 29, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTAMP:20240101T000000Z")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, config.CmdVersion)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, config.AppName+" version "+config.Version))
}

func TestConfigFileIsApplied(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: nonsense\n"), config.FilePermUserRW))

	_, err := execute(t, "--"+config.FlagConfig, path, config.CmdConvert, "2024-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLogLevel)
}

func TestRenderMonth_Week(t *testing.T) {
	f, err := format.New()
	require.NoError(t, err)

	var buf bytes.Buffer
	grid := engine.BuildMonthGrid(1, 1) // starts on a Thursday
	require.NoError(t, renderMonth(&buf, f.Names(language.English), grid, false))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Moharram-ul-Haraam 1", lines[0])
	assert.Equal(t, []string{"1", "2", "3"}, strings.Fields(lines[2]))
}

func TestSetupLogging_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "misri.log")

	closer, err := setupLogging(config.LogSettings{Level: "info", Format: config.LogFormatText, File: path}, false)
	require.NoError(t, err)
	require.NotNil(t, closer)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	slog.Info("hello", config.LogKeyComponent, config.CompMain)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}

func TestSetupLogging_InvalidLevel(t *testing.T) {
	_, err := setupLogging(config.LogSettings{Level: "loud", Format: config.LogFormatJSON}, false)
	assert.Error(t, err)
}
