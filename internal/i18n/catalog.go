// Package i18n looks up localized messages by symbolic key.
//
// Message bundles are TOML files embedded in the binary, one per locale.
// Lookups fall back from the active locale to the fallback locale and
// finally to the key itself, so a missing translation never hides a label.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Localizer resolves message keys to text in the active locale.
type Localizer interface {
	Lookup(key MessageKey, args ...any) string
}

// Notifier is told about locale changes so views can rebuild.
type Notifier interface {
	FireLocaleChanged(ctx context.Context, locale string)
}

// bundleFile is the on-disk layout of a locale bundle.
type bundleFile struct {
	Locale   string            `toml:"locale"`
	Messages map[string]string `toml:"messages"`
}

// Catalog holds every loaded bundle and the active locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback language.Tag
	current  language.Tag
	tags     []language.Tag
	bundles  map[language.Tag]map[MessageKey]string
	matcher  language.Matcher
	notifier Notifier
	log      zerolog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithNotifier sets who is told about locale changes.
func WithNotifier(n Notifier) Option {
	return func(c *Catalog) {
		c.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Catalog) {
		c.log = log
	}
}

// WithFallback sets the locale used when a message is missing.
func WithFallback(tag language.Tag) Option {
	return func(c *Catalog) {
		c.fallback = tag
	}
}

// Load builds a catalog from the bundles embedded in the binary.
func Load(opts ...Option) (*Catalog, error) {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, opts...)
}

// LoadFS builds a catalog from every *.toml file at the root of fsys.
func LoadFS(fsys fs.FS, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		fallback: language.English,
		bundles:  make(map[language.Tag]map[MessageKey]string),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	files, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	for _, name := range files {
		if err := c.loadBundle(fsys, name); err != nil {
			return nil, err
		}
	}

	if _, ok := c.bundles[c.fallback]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFallbackBundle, c.fallback)
	}

	// The matcher treats its first tag as the default.
	c.tags = append(c.tags, c.fallback)
	for tag := range c.bundles {
		if tag != c.fallback {
			c.tags = append(c.tags, tag)
		}
	}
	sort.Slice(c.tags[1:], func(i, j int) bool {
		return c.tags[i+1].String() < c.tags[j+1].String()
	})
	c.matcher = language.NewMatcher(c.tags)
	c.current = c.fallback

	return c, nil
}

func (c *Catalog) loadBundle(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return &BundleError{File: name, Err: err}
	}

	var bf bundleFile
	if err := toml.Unmarshal(data, &bf); err != nil {
		return &BundleError{File: name, Err: err}
	}

	locale := bf.Locale
	if locale == "" {
		locale = name[:len(name)-len(path.Ext(name))]
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return &BundleError{File: name, Err: err}
	}

	messages := make(map[MessageKey]string, len(bf.Messages))
	for k, v := range bf.Messages {
		messages[MessageKey(k)] = v
	}
	c.bundles[tag] = messages

	c.log.Debug().Str("locale", tag.String()).Int("messages", len(messages)).Msg("loaded message bundle")
	return nil
}

// Lookup returns the message for key in the active locale, formatting it
// with args when given.
func (c *Catalog) Lookup(key MessageKey, args ...any) string {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	msg, ok := c.bundles[current][key]
	if !ok {
		msg, ok = c.bundles[c.fallback][key]
	}
	if !ok {
		c.log.Debug().Str("key", string(key)).Str("locale", current.String()).Msg("missing message")
		return string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLocale selects the bundle that best matches locale and notifies views.
// Unknown locales resolve to the fallback.
func (c *Catalog) SetLocale(ctx context.Context, locale string) (language.Tag, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return c.Locale(), fmt.Errorf("parse locale %q: %w", locale, err)
	}

	_, index, confidence := c.matcher.Match(requested)
	tag := c.tags[index]
	if confidence == language.No {
		tag = c.fallback
	}

	c.mu.Lock()
	changed := tag != c.current
	c.current = tag
	c.mu.Unlock()

	if changed {
		c.log.Info().Str("requested", locale).Str("locale", tag.String()).Msg("locale changed")
		if c.notifier != nil {
			c.notifier.FireLocaleChanged(ctx, tag.String())
		}
	}
	return tag, nil
}

// Locale returns the active locale.
func (c *Catalog) Locale() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Locales returns every loaded locale, fallback first.
func (c *Catalog) Locales() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}
