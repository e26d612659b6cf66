package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHonorsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 1).WithName("provision")

	logger.Info("visible", "connection", "aoai-connection")
	logger.V(1).Info("also visible")
	logger.V(2).Info("hidden")

	out := buf.String()
	assert.Contains(t, out, "provision: ")
	assert.Contains(t, out, `"msg"="visible"`)
	assert.Contains(t, out, `"connection"="aoai-connection"`)
	assert.Contains(t, out, "also visible")
	assert.NotContains(t, out, "hidden")
}

func TestNewWithNilWriterDiscards(t *testing.T) {
	logger := New(nil, 5)
	assert.False(t, logger.Enabled())
}
