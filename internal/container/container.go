// Package container provides dependency injection for the payment builder.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"github.com/C0d3N1nJ4/payment-builder/internal/batch"
	"github.com/C0d3N1nJ4/payment-builder/internal/config"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"
	"github.com/C0d3N1nJ4/payment-builder/internal/pain013"
)

// Option customizes how a Container is wired.
type Option func(*options)

type options struct {
	logger        logging.Logger
	generatorOpts []pain013.Option
}

// WithLogger replaces the logger that would otherwise be built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGeneratorOptions passes options through to the message generator, typically a
// fixed IDSource and Clock.
func WithGeneratorOptions(opts ...pain013.Option) Option {
	return func(o *options) {
		o.generatorOpts = append(o.generatorOpts, opts...)
	}
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	normalizer *normalizer.Normalizer
	generator  *pain013.Generator
	processor  *batch.Processor
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	norm := normalizer.New(
		normalizer.WithDelimiter(cfg.CSV.Delimiter),
		normalizer.WithPolicy(cfg.Policy()),
	)
	gen := pain013.NewGenerator(o.generatorOpts...)

	procOpts := []batch.Option{batch.WithWorkers(cfg.Batch.Workers)}
	if len(cfg.Input.Extensions) > 0 {
		procOpts = append(procOpts, batch.WithExtensions(cfg.Input.Extensions...))
	}
	if cfg.Output.Suffix != "" {
		procOpts = append(procOpts, batch.WithOutputSuffix(cfg.Output.Suffix))
	}
	proc := batch.NewProcessor(logger, norm, gen, procOpts...)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldDelimiter, norm.Delimiter()),
		logging.F(logging.FieldPolicy, norm.Policy().String()),
		logging.F(logging.FieldWorkers, proc.Workers()))

	return &Container{
		logger:     logger,
		config:     cfg,
		normalizer: norm,
		generator:  gen,
		processor:  proc,
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

// GetNormalizer returns the record normalizer configured with the delimiter and policy.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetGenerator returns the pain.013 message generator.
func (c *Container) GetGenerator() *pain013.Generator {
	return c.generator
}

// GetProcessor returns the file and directory processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
