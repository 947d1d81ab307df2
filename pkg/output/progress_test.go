package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProgressRender tests the behavior of Progress rendering.
//
// It verifies:
//   - SetCurrent writes a carriage-return-prefixed counter line
//   - Increment advances the counter by one
//   - The percentage is rounded to a whole number
func TestProgressRender(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 5, "Upgrading packages")

	p.SetCurrent(2)
	assert.Equal(t, "\rUpgrading packages: 2/5 (40%)", buf.String())

	buf.Reset()
	p.Increment()
	assert.Equal(t, "\rUpgrading packages: 3/5 (60%)", buf.String())
}

// TestProgressDone tests the behavior of Progress.Done.
//
// It verifies:
//   - Done renders the final count and terminates the line
func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3, "Upgrading packages")

	p.SetCurrent(1)
	p.Done()

	assert.True(t, strings.HasSuffix(buf.String(), "3/3 (100%)\n"))
}

// TestProgressClear tests the behavior of Progress.Clear.
//
// It verifies:
//   - Clear overwrites the previous line with spaces
//   - Clear without a prior render writes nothing
func TestProgressClear(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 5, "Upgrading packages")

	p.Clear()
	assert.Zero(t, buf.Len())

	p.SetCurrent(2)
	buf.Reset()
	p.Clear()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\r"))
	assert.True(t, strings.HasSuffix(out, "\r"))
	assert.Empty(t, strings.Trim(out, "\r "))
}

// TestProgressDisabled tests the behavior of a disabled Progress.
//
// It verifies:
//   - No output is written while disabled
//   - Re-enabling resumes rendering
func TestProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 5, "Upgrading packages")
	p.SetEnabled(false)

	p.SetCurrent(1)
	p.Increment()
	p.Done()
	assert.Zero(t, buf.Len())

	p.SetEnabled(true)
	p.SetCurrent(3)
	assert.Equal(t, "\rUpgrading packages: 3/5 (60%)", buf.String())
}

// TestProgressZeroTotal tests the behavior of Progress with no steps.
//
// It verifies:
//   - Rendering is suppressed when the total is zero
func TestProgressZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 0, "Upgrading packages")

	p.SetCurrent(1)
	p.Increment()
	p.Done()

	assert.Zero(t, buf.Len())
}

// TestProgressPadsShorterLines tests the behavior of line-width tracking.
//
// It verifies:
//   - A shorter line is padded over the previous longer one
func TestProgressPadsShorterLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 100, "Upgrading packages")

	p.SetCurrent(50)
	wide := buf.Len()

	buf.Reset()
	p.SetCurrent(7)
	assert.Equal(t, wide, buf.Len())
	assert.True(t, strings.HasSuffix(buf.String(), " "))
}
