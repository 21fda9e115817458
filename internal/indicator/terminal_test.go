package indicator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalPulseCounts(t *testing.T) {
	var buf bytes.Buffer
	ind := &Terminal{Out: &buf} // zero cadence keeps the test instant

	ind.Pulse(3, 1)
	assert.Equal(t, 4, strings.Count(buf.String(), "●"))

	buf.Reset()
	ind.Pulse(0, 0)
	assert.Empty(t, buf.String())
}
