package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grovetools/ndagen/pkg/nda"
	"github.com/grovetools/ndagen/pkg/request"
	"github.com/grovetools/ndagen/pkg/selector"
	"github.com/sirupsen/logrus"
)

// Generator turns a request into an agreement: one selector call followed by
// deterministic assembly.
type Generator struct {
	logger   *logrus.Logger
	selector selector.Selector
}

func New(logger *logrus.Logger, sel selector.Selector) *Generator {
	return &Generator{logger: logger, selector: sel}
}

// Generate validates the request and produces the agreement text.
func (g *Generator) Generate(ctx context.Context, req request.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return g.GenerateDocument(ctx, req.Party(), req.ConversationContext)
}

// GenerateDocument asks the selector for clauses and assembles the document.
// A selection failure yields an error wrapping selector.ErrSelectionFailed and
// no document text.
func (g *Generator) GenerateDocument(ctx context.Context, party nda.PartyData, conversationContext string) (string, error) {
	log := g.logger.WithField("request_id", uuid.NewString())
	start := time.Now()

	// 1. Select clauses
	log.Debug("Selecting clauses from conversation context")
	selected, err := g.selector.Select(ctx, conversationContext)
	if err != nil {
		log.WithError(err).Error("Clause selection failed")
		return "", fmt.Errorf("failed to select clauses: %w", err)
	}

	// 2. Report names the library does not know; they are dropped during assembly
	if dropped := nda.Unknown(selected); len(dropped) > 0 {
		log.WithField("dropped", dropped).Warn("Selector suggested unknown clauses")
	}

	// 3. Assemble
	doc, err := nda.Generate(party, selected)
	if err != nil {
		return "", fmt.Errorf("failed to assemble agreement: %w", err)
	}

	included := nda.Included(selected)
	log.WithFields(logrus.Fields{
		"clauses":     len(included),
		"selected":    len(selected),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Generated agreement")

	return doc, nil
}
