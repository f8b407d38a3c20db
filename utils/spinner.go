package utils

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner shows a process indicator followed by a progress message.
type Spinner struct {
	out      io.Writer
	mu       sync.Mutex
	message  string
	stopChan chan struct{}
	done     chan struct{}
}

// NewSpinner instantiates a new Spinner writing to out.
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.SetMessage(message)
	s.stopChan = make(chan struct{}, 1)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.out, "\r\x1b[K")
					return
				default:
					fmt.Fprintf(s.out, "\r%s%s %c%s", s.Message(), SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// SetMessage replaces the text shown next to the indicator.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Message returns the text currently shown.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop stops the process indicator and waits for it to clear its line.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	s.stopChan <- struct{}{}
	<-s.done
	s.stopChan = nil
}
