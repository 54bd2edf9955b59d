package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status Status
		line   string
		code   int
	}{
		{StatusOK, "200 OK", 200},
		{StatusNotFound, "404 Not Found", 404},
		{StatusBadRequest, "400 Bad Request", 400},
		{StatusNotImplemented, "501 Not Implemented", 501},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.line, tt.status.String())
			assert.Equal(t, tt.code, tt.status.Code())
		})
	}
}

func TestOutcomeWithText(t *testing.T) {
	base := NewOutcome(StatusOK)
	withBody := base.WithText("hi")

	assert.Equal(t, Empty, base.Content, "WithText must not modify the receiver")
	assert.Equal(t, Content{Kind: ContentTextPlain, Body: "hi"}, withBody.Content)
}
