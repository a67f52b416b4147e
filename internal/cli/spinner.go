package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinner animates a status line with elapsed time until stopped or ctx ends.
type spinner struct {
	out   io.Writer
	msg   string
	start time.Time
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
	width int
}

func startSpinner(ctx context.Context, out io.Writer, msg string) *spinner {
	s := &spinner{
		out:   out,
		msg:   msg,
		start: time.Now(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.stop:
			return
		case <-ticker.C:
			line := fmt.Sprintf("%s %s %s",
				styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				StyleDim.Render(s.msg),
				StyleDim.Render(time.Since(s.start).Truncate(100*time.Millisecond).String()))
			s.width = max(s.width, len(line))
			fmt.Fprint(s.out, "\r"+line)
		}
	}
}

func (s *spinner) clear() {
	if s.width > 0 {
		fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
		s.width = 0
	}
}

// Stop ends the animation and clears the line. Later calls are no-ops.
func (s *spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.clear()
	})
}
