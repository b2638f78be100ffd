package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTimer struct {
	total time.Duration
	stage time.Duration
}

func (s *stubTimer) Start()    {}
func (s *stubTimer) NewStage() {}

func (s *stubTimer) GetTiming() (time.Duration, time.Duration) {
	return s.total, s.stage
}

func TestErrorfWritesSymbolAndContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Errorf(&buf, "boom: %s", "manifest missing")

	assert.Contains(t, buf.String(), "✗ boom: manifest missing")
}

func TestSuccessfWritesSymbolAndContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Successf(&buf, "bundle generated")

	assert.Contains(t, buf.String(), "✔ bundle generated")
}

func TestGeneratefWritesSymbolAndContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Generatef(&buf, "generated '%s'", "jenkins-secret.yaml")

	assert.Contains(t, buf.String(), "✚ generated 'jenkins-secret.yaml'")
}

func TestSuccessWithTimerfAppendsTimingBlock(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tmr := &stubTimer{total: 3 * time.Second, stage: time.Second}

	notify.SuccessWithTimerf(&buf, tmr, "applied")

	output := buf.String()
	require.Contains(t, output, "✔ applied")
	assert.Contains(t, output, "current: 1s")
	assert.Contains(t, output, "total:  3s")
}

func TestWriteMessageTitleUsesEmoji(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Titlef(&buf, "📦", "Scaffolding bundle")

	assert.Contains(t, buf.String(), "📦 Scaffolding bundle")
}

func TestWriteMessageIndentsMultilineContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Errorf(&buf, "first\nsecond")

	assert.Contains(t, buf.String(), "✗ first\n  second")
}
