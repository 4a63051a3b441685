package storyteller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

type completer interface {
	Complete(ctx context.Context, credential, prompt string) (string, error)
}

// Generator asks the AI provider for a new riddle. It keeps no state between calls.
type Generator struct {
	logger    *slog.Logger
	completer completer
}

func NewGenerator(logger *slog.Logger, completer completer) *Generator {
	return &Generator{
		logger:    logger.With("component", "storyteller"),
		completer: completer,
	}
}

// Generate - one provider call, no retries. The credential must not be empty.
func (that *Generator) Generate(ctx context.Context, credential string) (entity.Story, error) {
	log := that.logger.With("method", "Generate")

	startTime := time.Now()
	raw, err := that.completer.Complete(ctx, credential, Prompt)
	generationDuration.Observe(time.Since(startTime).Seconds())

	if err != nil {
		generationsTotal.WithLabelValues(statusError).Inc()
		log.Error("AI provider call failed", "error", err)
		return entity.Story{}, fmt.Errorf("%w: %w", apperror.ErrGenerationFailed, err)
	}

	story, err := ParseStory(raw)
	if err != nil {
		generationsTotal.WithLabelValues(statusMalformed).Inc()
		log.Warn("AI response could not be parsed", "error", err, "length", len(raw))
		return entity.Story{}, err
	}

	generationsTotal.WithLabelValues(statusSuccess).Inc()
	log.Info("new story generated", "title", story.Title, "duration", time.Since(startTime))

	return story, nil
}
