package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader watches the running binary and reports when a newer build
// lands on disk, so a development session can offer to restart itself.
type HotReloader struct {
	execPath      string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onNewBinary   func()
}

// NewHotReloader creates a watcher for the current executable. Returns nil
// if the executable path cannot be determined.
func NewHotReloader(checkInterval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build may write a new file while a symlink keeps pointing at the
	// old location; resolve it so we stat the real binary.
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}

	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}

	return &HotReloader{
		execPath:      execPath,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
}

// OnNewBinary sets the callback invoked when a newer binary is detected.
// It runs on a background goroutine.
func (h *HotReloader) OnNewBinary(callback func()) {
	h.onNewBinary = callback
}

// Start begins watching in a background goroutine.
func (h *HotReloader) Start() {
	h.stopCh = make(chan struct{})
	go h.watchLoop()
}

// Stop stops the watcher goroutine.
func (h *HotReloader) Stop() {
	close(h.stopCh)
}

func (h *HotReloader) watchLoop() {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			info, err := os.Stat(h.execPath)
			if err != nil {
				continue
			}
			if info.ModTime().After(h.baseline) {
				if h.onNewBinary != nil {
					h.onNewBinary()
				}
				return
			}
		}
	}
}

// ExecPath returns the path of the watched binary.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// ResetBaseline adopts the current binary mod time, suppressing repeated
// notifications after the user declines a restart.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart replaces the current process with the new binary, preserving
// arguments and environment. It does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
