package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler captures CPU profiles and execution traces when the simulation
// degrades, so a slow session leaves evidence behind. Captures run in the
// background and never block the game loop.
type Profiler struct {
	mu              sync.Mutex
	capturing       bool
	lastCapture     time.Time
	cooldown        time.Duration
	captureDuration time.Duration
	dir             string
}

// NewProfiler creates a profiler writing into the given directory.
func NewProfiler(dir string) *Profiler {
	os.MkdirAll(dir, 0755)
	return &Profiler{
		cooldown:        30 * time.Second,
		captureDuration: 5 * time.Second,
		dir:             dir,
	}
}

// Capture starts an asynchronous CPU profile and trace capture, tagged with
// the given reason. Returns an error when a capture is already running or
// the cooldown has not elapsed; callers treat that as "not now", not a
// failure worth surfacing.
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.capturing {
		return fmt.Errorf("profiler: capture already in progress")
	}
	if time.Since(p.lastCapture) < p.cooldown {
		return fmt.Errorf("profiler: capture on cooldown")
	}
	p.capturing = true
	p.lastCapture = time.Now()

	base := fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), reason)
	go func() {
		defer func() {
			p.mu.Lock()
			p.capturing = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPU(base); err != nil {
				fmt.Fprintf(os.Stderr, "profiler: %v\n", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(base); err != nil {
				fmt.Fprintf(os.Stderr, "profiler: %v\n", err)
			}
		}()
		wg.Wait()
	}()
	return nil
}

func (p *Profiler) captureCPU(base string) error {
	path := filepath.Join(p.dir, base+".cpu.prof")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(base string) error {
	path := filepath.Join(p.dir, base+".trace")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer f.Close()

	if err := trace.Start(f); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()
	return nil
}

// IsCapturing reports whether a capture is in progress.
func (p *Profiler) IsCapturing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capturing
}
