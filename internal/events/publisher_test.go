package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/blogforge/internal/config"
)

func TestNewPublisherRequiresEnabledConfig(t *testing.T) {
	_, err := NewPublisher(nil)
	assert.Error(t, err)

	_, err = NewPublisher(&config.EventsConfig{Enabled: false})
	assert.Error(t, err)
}

func TestCloseOnZeroPublisher(t *testing.T) {
	// Close must be safe on a publisher that never connected.
	p := &Publisher{}
	p.Close()
}
