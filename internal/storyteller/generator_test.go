package storyteller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

var errQuotaExceeded = errors.New("googleapi: Error 429: quota exceeded")

type completerMock struct {
	mock.Mock
}

func (m *completerMock) Complete(ctx context.Context, credential, prompt string) (string, error) {
	args := m.Called(ctx, credential, prompt)
	return args.String(0), args.Error(1)
}

func newTestGenerator(t *testing.T) (*Generator, *completerMock) {
	t.Helper()

	completer := &completerMock{}
	completer.Test(t)
	t.Cleanup(func() { completer.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGenerator(logger, completer), completer
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the parsed story on success", func(t *testing.T) {
		// Given: a provider answering in the expected format
		generator, completer := newTestGenerator(t)
		completer.On("Complete", mock.Anything, "secret-key", Prompt).
			Return("X ||| Y ||| Z", nil).
			Once()

		before := testutil.ToFloat64(generationsTotal.WithLabelValues(statusSuccess))

		// When: a story is generated
		story, err := generator.Generate(ctx, "secret-key")

		// Then: the story holds the trimmed segments
		require.NoError(t, err)
		assert.Equal(t, entity.Story{Title: "X", Riddle: "Y", Solution: "Z"}, story)
		assert.InDelta(t, before+1, testutil.ToFloat64(generationsTotal.WithLabelValues(statusSuccess)), 0.001)
	})

	t.Run("Returns ErrMalformedResponse on too few segments", func(t *testing.T) {
		// Given: a provider ignoring the format
		generator, completer := newTestGenerator(t)
		completer.On("Complete", mock.Anything, "secret-key", Prompt).
			Return("Sorry, I cannot do that ||| really", nil).
			Once()

		before := testutil.ToFloat64(generationsTotal.WithLabelValues(statusMalformed))

		// When: a story is generated
		story, err := generator.Generate(ctx, "secret-key")

		// Then: the format failure is reported and no story is returned
		require.ErrorIs(t, err, apperror.ErrMalformedResponse)
		assert.NotErrorIs(t, err, apperror.ErrGenerationFailed)
		assert.True(t, story.IsZero())
		assert.InDelta(t, before+1, testutil.ToFloat64(generationsTotal.WithLabelValues(statusMalformed)), 0.001)
	})

	t.Run("Wraps provider errors into ErrGenerationFailed", func(t *testing.T) {
		// Given: a provider failing with a rate limit
		generator, completer := newTestGenerator(t)
		completer.On("Complete", mock.Anything, "secret-key", Prompt).
			Return("", errQuotaExceeded).
			Once()

		// When: a story is generated
		story, err := generator.Generate(ctx, "secret-key")

		// Then: the error carries both the class and the provider message
		require.ErrorIs(t, err, apperror.ErrGenerationFailed)
		require.ErrorIs(t, err, errQuotaExceeded)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.True(t, story.IsZero())
	})
}
