// Package container provides dependency injection for the statement-parser
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/registry"
	"fjacquet/statement-parser/internal/statement"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation; all fields are private and
// can only be reached through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	registry *registry.Registry
	parser   *statement.Parser
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	external statement.Strategy
}

// WithExternalStrategy wires an external parser integration into the
// orchestrator. The fallback behavior comes from configuration.
func WithExternalStrategy(strategy statement.Strategy) Option {
	return func(o *options) {
		o.external = strategy
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	reg := registry.New(cfg.Registry.Directory, logger)

	parserOpts := []statement.Option{statement.WithLogger(logger)}
	if cfg.External.Enabled && o.external != nil {
		parserOpts = append(parserOpts, statement.WithExternal(o.external, cfg.External.Fallback))
		logger.Info("External parser strategy enabled")
	}
	parser := statement.New(reg, parserOpts...)

	logger.Debug("Container initialized",
		logging.Field{Key: "registry_dir", Value: cfg.Registry.Directory},
		logging.Field{Key: "external_enabled", Value: cfg.External.Enabled})

	return &Container{
		logger:   logger,
		config:   cfg,
		registry: reg,
		parser:   parser,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRegistry returns the shared pattern registry.
func (c *Container) GetRegistry() *registry.Registry {
	return c.registry
}

// GetStatementParser returns the parsing orchestrator.
func (c *Container) GetStatementParser() *statement.Parser {
	return c.parser
}
