package extract

import (
	"github.com/aihes/llm-content-extractor/internal/logger"
)

// strategy is one stage of an extraction cascade.
type strategy struct {
	name string
	run  func() (any, error)
}

// runCascade tries each strategy in order and returns the first
// success. Per-stage failures are swallowed and recorded; exhausting
// the list yields a CascadeError carrying every attempt.
func runCascade(contentType ContentType, strategies []strategy) (any, error) {
	attempts := make([]Attempt, 0, len(strategies))
	for _, s := range strategies {
		v, err := s.run()
		if err == nil {
			logger.Debug("extraction strategy succeeded",
				"type", contentType,
				"strategy", s.name,
				"attempts", len(attempts)+1)
			return v, nil
		}
		logger.Debug("extraction strategy failed",
			"type", contentType,
			"strategy", s.name,
			"error", err)
		attempts = append(attempts, Attempt{Strategy: s.name, Err: err})
	}
	return nil, &CascadeError{ContentType: contentType, Attempts: attempts}
}
