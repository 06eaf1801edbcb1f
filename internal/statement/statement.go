// Package statement implements the parsing orchestrator: institution
// detection, statement-year inference and the strategy fallback chain
// (external integration, dialect state machine, generic parser). The first
// strategy to produce transactions wins; an empty result from every
// strategy is returned as an empty list, never as an error.
package statement

import (
	"fmt"

	"fjacquet/statement-parser/internal/genericparser"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/registry"
	"fjacquet/statement-parser/internal/wordparser"
)

// Parser orchestrates the strategy chain for one or more documents. It is
// safe for concurrent use: all per-parse state lives on the stack and the
// registry swaps its table atomically.
type Parser struct {
	registry         *registry.Registry
	external         Strategy
	externalFallback bool
	logger           logging.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithExternal wires an external parser strategy in front of the built-in
// chain. When fallback is false, an external failure propagates to the
// caller instead of being swallowed.
func WithExternal(strategy Strategy, fallback bool) Option {
	return func(p *Parser) {
		p.external = strategy
		p.externalFallback = fallback
	}
}

// WithLogger overrides the process-wide default logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates the orchestrator over a pattern registry.
func New(reg *registry.Registry, opts ...Option) *Parser {
	p := &Parser{
		registry:         reg,
		externalFallback: true,
		logger:           logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the strategy chain over one document. The institution hint may
// be empty, in which case it is detected from the text. Account type is a
// string like "debit_card" or "credit_card".
func (p *Parser) Parse(doc models.Document, institution, accountType string) ([]models.Transaction, error) {
	if institution == "" {
		institution = DetectInstitution(doc.Text)
	}
	year := InferStatementYear(doc.Text)
	accountKey := models.AccountKey(institution, accountType)

	logger := p.logger.WithFields(
		logging.Field{Key: logging.FieldInstitution, Value: institution},
		logging.Field{Key: logging.FieldAccountKey, Value: accountKey},
		logging.Field{Key: logging.FieldYear, Value: year},
	)

	if p.external != nil && accountKey != "" && doc.SourcePath != "" {
		txs, err := p.runExternal(doc, institution, accountType, accountKey)
		if err != nil {
			if !p.externalFallback {
				return nil, err
			}
			logger.WithError(err).Warn("External parser failed, falling back")
		} else if len(txs) > 0 {
			logger.Info("External parser produced transactions",
				logging.Field{Key: logging.FieldCount, Value: len(txs)})
			return Canonicalize(txs, accountKey), nil
		}
	}

	if wordparser.Supported(accountKey) {
		pattern, _ := p.registry.Resolve(accountKey)
		txs := p.runDialect(doc.Text, accountKey, pattern, year, logger)
		if len(txs) > 0 {
			return Canonicalize(txs, accountKey), nil
		}
		logger.Debug("Dialect parser produced nothing, trying generic fallback")
	}

	pattern, _ := p.registry.Resolve(accountKey)
	generic := genericparser.New(pattern, year, logger)
	txs, err := generic.Parse(doc)
	if err != nil {
		logger.WithError(err).Warn("Generic parser failed")
		return nil, nil
	}
	return Canonicalize(txs, accountKey), nil
}

// runExternal invokes the external strategy with panics converted to
// errors, so a misbehaving integration can never take the engine down.
func (p *Parser) runExternal(doc models.Document, institution, accountType, accountKey string) (txs []models.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			txs, err = nil, fmt.Errorf("external parser panicked: %v", r)
		}
	}()
	return p.external.Parse(doc.SourcePath, institution, accountType, accountKey)
}

// runDialect runs the dialect state machine with panic recovery; a failure
// here abandons the strategy in favor of the generic fallback.
func (p *Parser) runDialect(text, accountKey string, pattern models.ParsingPattern, year int, logger logging.Logger) (txs []models.Transaction) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Dialect parser panicked, falling back",
				logging.Field{Key: logging.FieldReason, Value: fmt.Sprint(r)})
			txs = nil
		}
	}()

	wp, err := wordparser.New(accountKey, pattern, year, logger)
	if err != nil {
		logger.WithError(err).Warn("Dialect parser unavailable")
		return nil
	}
	txs, err = wp.Parse(text)
	if err != nil {
		logger.WithError(err).Warn("Dialect parser failed")
		return nil
	}
	return txs
}
