// Package components holds the concrete views composed into wizard panels.
//
// Each subpackage pairs a small model with a view built on view.Component.
package components
