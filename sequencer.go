package morph

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Status is the terminal state of a morph sequence.
type Status int

const (
	// StatusComplete means every frame has been produced.
	StatusComplete Status = iota
	// StatusCancelled means the run stopped early on request.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Result summarises a finished run.
type Result struct {
	Status Status
	Frames int // frames handed to the caller
}

// Outcome is delivered by Go once the sequence ends.
type Outcome struct {
	Result
	Err error
}

// Sequencer drives a compositor over Steps+1 ratios 0, 1/Steps, ..., 1.
// Frames are produced strictly one after the other.
type Sequencer struct {
	compositor *Compositor
	steps      int
	cancel     atomic.Bool

	// OnProgress, if set, is called after each frame with the index of the
	// frame just produced and the configured step count.
	OnProgress func(index, total int)
}

// NewSequencer creates a sequencer producing steps+1 frames.
func NewSequencer(c *Compositor, steps int) (*Sequencer, error) {
	if c == nil {
		return nil, errors.New("compositor is nil")
	}
	if steps < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "steps must be positive, got %d", steps)
	}
	return &Sequencer{compositor: c, steps: steps}, nil
}

// Cancel asks a running sequence to stop once the current frame is done.
// It is safe to call from any goroutine. A cancelled sequencer stays
// cancelled.
func (s *Sequencer) Cancel() {
	s.cancel.Store(true)
}

// Run composes each frame and hands it to yield before starting the next.
// Cancellation, through Cancel or ctx, is honoured between frames only and
// ends the run with StatusCancelled and a nil error. An error returned by
// yield stops the run and is returned annotated with the frame index.
func (s *Sequencer) Run(ctx context.Context, yield func(*Frame) error) (Result, error) {
	log := componentLogger("sequencer")

	var res Result
	for i := 0; i <= s.steps; i++ {
		if s.cancelled(ctx) {
			res.Status = StatusCancelled
			log.Info().Int("frames", res.Frames).Msg("morph cancelled")
			return res, nil
		}
		frame := s.compositor.Compose(i, float64(i)/float64(s.steps))
		if err := yield(frame); err != nil {
			return res, errors.Wrapf(err, "frame %d", i)
		}
		res.Frames++
		if s.OnProgress != nil {
			s.OnProgress(i, s.steps)
		}
	}
	res.Status = StatusComplete
	log.Info().Int("frames", res.Frames).Msg("morph complete")

	return res, nil
}

// Go runs the sequence on its own goroutine. The returned channel receives
// exactly one outcome.
func (s *Sequencer) Go(ctx context.Context, yield func(*Frame) error) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := s.Run(ctx, yield)
		out <- Outcome{Result: res, Err: err}
	}()
	return out
}

func (s *Sequencer) cancelled(ctx context.Context) bool {
	if s.cancel.Load() {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
