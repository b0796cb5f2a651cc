package extension

import (
	"go.uber.org/zap"

	"github.com/wippyai/godot-bridge/binding"
	"github.com/wippyai/godot-bridge/config"
	"github.com/wippyai/godot-bridge/lifecycle"
	"github.com/wippyai/godot-bridge/variant"
)

type options struct {
	config       *config.Config
	logger       *zap.Logger
	minimum      *lifecycle.Level
	variantHooks variant.Hooks
	bindingHooks binding.Hooks
	sceneInit    func(*Process)
}

// Option configures Initialize.
type Option func(*options)

// WithConfig uses cfg instead of loading configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.config = &cfg }
}

// WithLogger uses l instead of building a logger from configuration.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMinimumLevel overrides extension.minimum_level.
func WithMinimumLevel(l lifecycle.Level) Option {
	return func(o *options) { o.minimum = &l }
}

// WithVariantHooks installs Variant transition hooks.
func WithVariantHooks(h variant.Hooks) Option {
	return func(o *options) { o.variantHooks = h }
}

// WithBindingHooks installs object binding hooks.
func WithBindingHooks(h binding.Hooks) Option {
	return func(o *options) { o.bindingHooks = h }
}

// WithSceneInit runs fn on every scene-level initialization, before the
// library's own callback. Class registration that is not tied to one
// library belongs here.
func WithSceneInit(fn func(*Process)) Option {
	return func(o *options) { o.sceneInit = fn }
}
