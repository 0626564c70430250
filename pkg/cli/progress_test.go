package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}

func TestSimpleProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgressReporter(buf)
	p.now = fixedClock(time.Unix(0, 0), time.Second)

	p.Start(4)
	p.Increment()
	p.Increment()

	out := buf.String()
	if !strings.Contains(out, "(2/4)") {
		t.Errorf("expected 2/4 progress, got %q", out)
	}
	if !strings.Contains(out, "50.0%") {
		t.Errorf("expected 50%% progress, got %q", out)
	}

	p.Finish()
	if p.Current() != 4 {
		t.Errorf("Current() = %d, want 4", p.Current())
	}
	if !strings.HasSuffix(buf.String(), "(4/4) 1.0 models/s\n") {
		t.Errorf("unexpected final line %q", buf.String())
	}
}

func TestSimpleProgressIncrementCapped(t *testing.T) {
	p := NewProgressReporter(&bytes.Buffer{})
	p.Start(1)
	p.Increment()
	p.Increment()

	if p.Current() != 1 {
		t.Errorf("Current() = %d, want 1", p.Current())
	}
}

func TestSimpleProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgressReporter(buf)
	p.Start(0)
	p.Increment()

	if buf.Len() != 0 {
		t.Errorf("expected no output for empty batch, got %q", buf.String())
	}
}

func TestSimpleProgressConcurrent(t *testing.T) {
	p := NewProgressReporter(&bytes.Buffer{})
	p.Start(100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Increment()
		}()
	}
	wg.Wait()

	if p.Current() != 100 {
		t.Errorf("Current() = %d, want 100", p.Current())
	}
}
