package storyteller

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/blackstories-backend/internal/apperror"
	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

const storySegments = 3

// ParseStory maps the first three delimited segments to title, riddle and solution.
// Anything after the third segment is dropped. Individual segments may be empty, all three may not.
func ParseStory(raw string) (entity.Story, error) {
	parts := strings.Split(raw, Delimiter)
	if len(parts) < storySegments {
		return entity.Story{}, fmt.Errorf("%w: got %d segment(s)", apperror.ErrMalformedResponse, len(parts))
	}

	story := entity.Story{
		Title:    strings.TrimSpace(parts[0]),
		Riddle:   strings.TrimSpace(parts[1]),
		Solution: strings.TrimSpace(parts[2]),
	}

	// a room must never be left without a story
	if story.IsZero() {
		return entity.Story{}, fmt.Errorf("%w: all segments are empty", apperror.ErrMalformedResponse)
	}

	return story, nil
}
