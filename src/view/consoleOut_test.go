package view

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"torolife/src/universe"
)

//syncBuffer is written by the simulation loop and read by the test
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestConsoleOutReportsFinishedField(t *testing.T) {
	stateCh := make(chan universe.Status, 16)
	s := universe.NewSimulation(&universe.Options{Width: 4, Height: 4, MaxSteps: 10}, stateCh)
	defer s.Close()

	out := &syncBuffer{}
	c := NewConsoleOut(out, false)
	s.RegisterViewer(c)
	c.Start()
	s.SettleTemplate("block")
	s.Run()

	timeout := time.After(5 * time.Second)
	for finished := false; !finished; {
		select {
		case st := <-stateCh:
			finished = st.RunningMode == universe.RunningStateFinished
		case <-timeout:
			t.Fatal("timed out waiting for the simulation to finish")
		}
	}

	got := out.String()
	for _, want := range []string{
		"Running configuration:",
		"Dimension: 4 x 4",
		"Max iterations: 10 steps",
		"Simulation started...",
		"Finished:",
		"Last iteration: 1",
		"Live cells: 4",
		"◻◻◻◻\n◻◼◼◻\n◻◼◼◻\n◻◻◻◻\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatal("expected no escape sequences with colors disabled")
	}
}

func TestConsoleOutColors(t *testing.T) {
	c := NewConsoleOut(&bytes.Buffer{}, true)
	u := universe.New(2, 1, nil)
	u.SetCellAlive(0, 0)
	field := c.renderField(u.Cells())
	if !strings.Contains(field, "\x1b[") || !strings.HasSuffix(field, string(universe.DeadGlyph)+"\n") {
		t.Fatalf("expected a colored live cell followed by a plain dead cell, got %q", field)
	}
}
