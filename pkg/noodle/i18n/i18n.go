package i18n

import (
	"embed"
	"encoding/json"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var embeddedLocales embed.FS

var (
	mu sync.RWMutex
	i  *I18N

	// fallbackLocalizer renders default messages before a bundle is loaded.
	fallbackLocalizer = i18n.NewLocalizer(newBundle(), "en")
)

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
}

type MessageFile struct {
	Name    string
	Content []byte
}

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func set(bundle *i18n.Bundle, langs ...string) {
	mu.Lock()
	defer mu.Unlock()
	i = &I18N{localizer: i18n.NewLocalizer(bundle, langs...), bundle: bundle}
}

func current() *I18N {
	mu.RLock()
	defer mu.RUnlock()
	return i
}

// InitDefault loads the bundled translations and selects lang, falling back to English.
func InitDefault(lang string) error {
	bundle := newBundle()

	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := embeddedLocales.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return err
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return err
		}
	}

	set(bundle, lang, language.English.String())
	return nil
}

func InitI18N(messageFilePaths []string) error {
	bundle := newBundle()

	for _, messageFile := range messageFilePaths {
		_, err := bundle.LoadMessageFile(messageFile)
		if err != nil {
			return err
		}
	}

	set(bundle, language.English.String(), language.Spanish.String())
	return nil
}

func InitI18NFromBytes(messageFiles []MessageFile) error {
	bundle := newBundle()

	for _, messageFile := range messageFiles {
		_, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name)
		if err != nil {
			return err
		}
	}

	set(bundle, language.English.String(), language.Spanish.String())
	return nil
}

func SetLanguage(lang language.Tag) {
	cur := current()
	if cur == nil {
		return
	}
	set(cur.bundle, lang.String(), language.English.String())
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(lang)
	return nil
}

// Reset drops the active bundle so every lookup returns its default text.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	i = nil
}

// Message is an alias for i18n.Message to avoid requiring users to import go-i18n directly
type Message = i18n.Message

// Localize resolves message in the current language. The message's Other text is
// returned when no bundle is loaded or no translation exists.
func Localize(message *Message, templateData map[string]interface{}) string {
	if message == nil {
		return "I18N Error: nil message"
	}

	localizer := fallbackLocalizer
	if cur := current(); cur != nil {
		localizer = cur.localizer
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
	}

	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := localizer.Localize(config)
	if err != nil {
		if msg != "" {
			return msg
		}
		if message.Other != "" {
			return message.Other
		}
		return "I18N Error"
	}
	return msg
}
