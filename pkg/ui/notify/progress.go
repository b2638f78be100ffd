package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/devantler-tech/kforge/pkg/ui/timer"
	fcolor "github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

// ProgressTask is a named unit of work, typically one manifest file.
type ProgressTask struct {
	// Name is the display name of the task (e.g., "jenkins-secret.yaml").
	Name string
	// Fn is the function to execute. It receives a context for cancellation.
	Fn func(ctx context.Context) error
}

// ProgressGroup runs tasks in parallel behind a single status line showing a
// spinner, a done counter, and the files currently in flight.
type ProgressGroup struct {
	title  string
	emoji  string
	verb   string
	writer io.Writer
	timer  timer.Timer

	mu      sync.Mutex
	total   int
	done    int
	running map[string]struct{}
	frame   int
	stop    chan struct{}
	stopped chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewProgressGroup creates a ProgressGroup. The verb is the past tense used
// in the final success message (e.g., "validated"); it defaults to "done".
// A nil writer falls back to os.Stdout.
func NewProgressGroup(title, emoji, verb string, writer io.Writer, tmr timer.Timer) *ProgressGroup {
	if writer == nil {
		writer = os.Stdout
	}

	if emoji == "" {
		emoji = "📦"
	}

	if verb == "" {
		verb = "done"
	}

	return &ProgressGroup{
		title:   title,
		emoji:   emoji,
		verb:    verb,
		writer:  writer,
		timer:   tmr,
		running: make(map[string]struct{}),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run executes all tasks in parallel with live progress updates. It returns
// the first task error, prefixed with the task name.
func (pg *ProgressGroup) Run(ctx context.Context, tasks ...ProgressTask) error {
	if len(tasks) == 0 {
		return nil
	}

	pg.total = len(tasks)

	if pg.timer != nil {
		pg.timer.NewStage()
	}

	pg.render()

	go pg.animate()

	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() error {
			pg.taskStarted(task.Name)

			taskErr := task.Fn(groupCtx)

			pg.taskFinished(task.Name)

			if taskErr != nil {
				return fmt.Errorf("%s: %w", task.Name, taskErr)
			}

			return nil
		})
	}

	err := group.Wait()

	close(pg.stop)
	<-pg.stopped

	pg.mu.Lock()
	pg.clearLine()
	pg.mu.Unlock()

	pg.printFinalStatus(tasks, err)

	return err
}

func (pg *ProgressGroup) taskStarted(name string) {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	pg.running[name] = struct{}{}
}

func (pg *ProgressGroup) taskFinished(name string) {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	delete(pg.running, name)
	pg.done++
}

// animate redraws the status line until Run closes the stop channel.
func (pg *ProgressGroup) animate() {
	defer close(pg.stopped)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-pg.stop:
			return
		case <-ticker.C:
			pg.render()
		}
	}
}

// render redraws the single status line in place, e.g.
// "📋 Validating manifests ⠸ 2/6 jenkins-pv.yaml, jenkins-pvc.yaml".
func (pg *ProgressGroup) render() {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	pg.frame = (pg.frame + 1) % len(spinnerFrames)

	counter := fcolor.New(fcolor.FgCyan).Sprintf(
		"%s %d/%d", spinnerFrames[pg.frame], pg.done, pg.total,
	)

	inFlight := make([]string, 0, len(pg.running))
	for name := range pg.running {
		inFlight = append(inFlight, name)
	}

	slices.Sort(inFlight)

	line := fmt.Sprintf("%s %s %s", pg.emoji, pg.title, counter)
	if len(inFlight) > 0 {
		line += " " + fcolor.New(fcolor.FgHiBlack).Sprint(strings.Join(inFlight, ", "))
	}

	pg.clearLine()
	_, _ = fmt.Fprint(pg.writer, line)
}

// clearLine clears the current terminal line. Caller must hold the lock.
func (pg *ProgressGroup) clearLine() {
	_, _ = fmt.Fprint(pg.writer, "\r\033[K")
}

// printFinalStatus replaces the status line with the final success or error
// message.
func (pg *ProgressGroup) printFinalStatus(tasks []ProgressTask, err error) {
	if err != nil {
		WriteMessage(Message{
			Type:    ErrorType,
			Content: fmt.Sprintf("%v", err),
			Writer:  pg.writer,
		})

		return
	}

	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}

	WriteMessage(Message{
		Type:    SuccessType,
		Content: strings.Join(names, ", ") + " " + pg.verb,
		Timer:   pg.timer,
		Writer:  pg.writer,
	})
}
