package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainOutputWhenNotTerminal(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, false)

	log.Infof("hello %s", "world")
	log.Warningf("careful")
	log.Errorf("boom")

	assert.Equal(t, "[INFO] hello world\n[WARNING] careful\n[ERROR] boom\n", out.String())
}

func TestTracefSuppressedWithoutVerbose(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, false)

	log.Tracef("should not appear")
	assert.Empty(t, out.String())
}

func TestTracefRedactsSecrets(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, true)

	log.Tracef("line 4: export API_TOKEN=supersecretvalue")

	got := out.String()
	assert.Contains(t, got, "[VERBOSE]")
	assert.Contains(t, got, "[REDACTED]")
	assert.NotContains(t, got, "supersecretvalue")
	assert.NotContains(t, got, "API_TOKEN")
}

func TestVerboseAccessor(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, New(&out, true).Verbose())
	assert.False(t, New(&out, false).Verbose())
}
