package l10n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ldelacroix/polycal/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator wraps the i18n bundle behind a small lookup API. A Translator
// is immutable after New and safe for concurrent use.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	langs     []string
}

// New loads the embedded locale bundles and selects the requested language,
// falling back to the default when the tag is unknown.
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	} else {
		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
				slog.Debug(config.MsgLocaleSkip,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
				)
				continue
			}

			langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
			if langCode == "" {
				slog.Warn(config.MsgLocaleBadName,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
				)
				continue
			}

			if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
				slog.Error(config.ErrLocaleLoad,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
					config.LogKeyError, err,
				)
				continue
			}
			t.langs = append(t.langs, langCode)
			slog.Debug(config.MsgLocaleLoaded,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyLang, langCode,
				config.LogKeyFile, name,
			)
		}
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	t.localizer = i18n.NewLocalizer(bundle, lang, config.DefaultLanguage)
	return t
}

// Languages lists the locales detected in the embedded bundle.
func (t *Translator) Languages() []string {
	return t.langs
}

// Msg translates a key, returning the key itself when no translation exists
// so callers always get renderable text.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key with template data.
func (t *Translator) MsgData(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
