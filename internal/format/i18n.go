package format

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-misri/internal/config"
	"github.com/tartampluch/go-misri/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Languages are the two output styles every Formatter provides.
var Languages = []language.Tag{language.English, language.Arabic}

// Names is the fixed vocabulary of one language.
type Names struct {
	Months       [engine.MonthsPerYear]string
	Weekdays     [7]string
	CalendarName string
}

// loadBundle reads every embedded active.<lang>.json file into a bundle.
func loadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(config.LocalesDir, name)); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
	}

	return bundle, nil
}

// resolveNames looks up every message of tag. A key that is missing, or only found
// through fallback to another language, is an error.
func resolveNames(bundle *i18n.Bundle, tag language.Tag) (Names, error) {
	loc := i18n.NewLocalizer(bundle, tag.String())
	want, _ := tag.Base()

	get := func(id string) (string, error) {
		msg, got, err := loc.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: id})
		if err != nil {
			return "", fmt.Errorf("%s %s/%s: %w", config.ErrTransMissing, tag, id, err)
		}
		if base, _ := got.Base(); base != want {
			return "", fmt.Errorf("%s %s/%s: resolved as %s", config.ErrTransMissing, tag, id, got)
		}
		return msg, nil
	}

	var n Names
	var err error
	for m := 1; m <= engine.MonthsPerYear; m++ {
		if n.Months[m-1], err = get(fmt.Sprintf(config.TKeyMonthFmt, m)); err != nil {
			return Names{}, err
		}
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if n.Weekdays[d], err = get(fmt.Sprintf(config.TKeyDayFmt, int(d))); err != nil {
			return Names{}, err
		}
	}
	if n.CalendarName, err = get(config.TKeyCalName); err != nil {
		return Names{}, err
	}

	slog.Debug(config.MsgLocaleLoaded,
		config.LogKeyComponent, config.CompI18n,
		config.LogKeyLang, tag.String(),
	)
	return n, nil
}
