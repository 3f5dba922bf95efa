package i18n

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type recordingNotifier struct {
	locales []string
}

func (n *recordingNotifier) FireLocaleChanged(_ context.Context, locale string) {
	n.locales = append(n.locales, locale)
}

func TestLoad_EmbeddedBundles(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, language.English, c.Locale())
	assert.Equal(t, []language.Tag{language.English, language.German, language.French}, c.Locales())
	assert.Equal(t, "Next", c.Lookup(ButtonNext))
	assert.Equal(t, "Wallet created on %s", c.Lookup(TrezorWalletCreated))
	assert.Equal(t, "Wallet created on Trezor One", c.Lookup(TrezorWalletCreated, "Trezor One"))
}

func TestCatalog_FallbackChain(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.SetLocale(context.Background(), "fr")
	require.NoError(t, err)

	assert.Equal(t, "Suivant", c.Lookup(ButtonNext))
	// Missing in fr, present in en.
	assert.Equal(t, "Restore", c.Lookup(ButtonRestore))
	// Missing everywhere.
	assert.Equal(t, "no_such_key", c.Lookup(MessageKey("no_such_key")))
}

func TestCatalog_SetLocaleMatchesAndNotifies(t *testing.T) {
	n := &recordingNotifier{}
	c, err := Load(WithNotifier(n))
	require.NoError(t, err)
	ctx := context.Background()

	tag, err := c.SetLocale(ctx, "de-AT")
	require.NoError(t, err)
	assert.Equal(t, language.German, tag)
	assert.Equal(t, "Weiter", c.Lookup(ButtonNext))

	// Same bundle again: no notification.
	_, err = c.SetLocale(ctx, "de")
	require.NoError(t, err)

	// Unsupported locale resolves to the fallback.
	tag, err = c.SetLocale(ctx, "ja")
	require.NoError(t, err)
	assert.Equal(t, language.English, tag)

	assert.Equal(t, []string{"de", "en"}, n.locales)
}

func TestCatalog_SetLocaleRejectsMalformedTag(t *testing.T) {
	n := &recordingNotifier{}
	c, err := Load(WithNotifier(n))
	require.NoError(t, err)

	tag, err := c.SetLocale(context.Background(), "not a locale!")
	assert.Error(t, err)
	assert.Equal(t, language.English, tag)
	assert.Empty(t, n.locales)
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr error
	}{
		{
			name:    "missing fallback",
			fsys:    fstest.MapFS{"de.toml": {Data: []byte("locale = \"de\"\n[messages]\nbutton_next = \"Weiter\"\n")}},
			wantErr: ErrNoFallbackBundle,
		},
		{
			name: "malformed bundle",
			fsys: fstest.MapFS{"en.toml": {Data: []byte("locale = \n")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			var bundleErr *BundleError
			require.ErrorAs(t, err, &bundleErr)
			assert.Equal(t, "en.toml", bundleErr.File)
		})
	}
}

func TestLoadFS_LocaleFromFileName(t *testing.T) {
	c, err := LoadFS(fstest.MapFS{
		"en.toml": {Data: []byte("[messages]\nbutton_next = \"Next\"\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Next", c.Lookup(ButtonNext))
}
