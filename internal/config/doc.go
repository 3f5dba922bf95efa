// Package config loads the wallet UI settings.
//
// Settings come from three places, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← WALLETVIEW_*
//	├─────────────────────────────┤
//	│  2. Configuration File      │  ← walletview.toml / walletview.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file format follows the extension: .toml, .yaml or .yml.
//
// # Live Reload
//
// A Watcher observes the file and hands every successfully reloaded
// configuration to a callback, together with the names of the settings
// that changed:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, changed []string) {
//	    loop.Post(func(ctx context.Context) {
//	        notifier.Apply(ctx, cfg, changed)
//	    })
//	})
//
// The callback runs on the watcher goroutine; callers marshal it onto the
// UI loop before touching views.
package config
