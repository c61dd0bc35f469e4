package retry

import (
	"context"
	"errors"

	"github.com/vvka-141/pi-go/pkg/pi"
)

// Classifier implements pi.ErrorClassifier for the pi error taxonomy.
type Classifier struct{}

// NewClassifier creates a new taxonomy classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsTransient reports whether err is worth another attempt.
func (c *Classifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is the caller giving up, not the network failing.
	if errors.Is(err, context.Canceled) {
		return false
	}

	kind, ok := pi.KindOf(err)
	if !ok {
		return false
	}

	switch kind {
	case pi.KindHTTP, pi.KindTimeout:
		return true
	case pi.KindJSON,
		pi.KindAPI,
		pi.KindAuthentication,
		pi.KindConfiguration,
		pi.KindStellar,
		pi.KindInsufficientBalance:
		return false
	}

	return false
}
