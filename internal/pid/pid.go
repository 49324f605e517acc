package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/vitalstats/internal/errors"
)

const (
	DefaultName = "vitalstatsd.pid"
)

var errFactory = errors.New()

// File is a PID file guarding against a second daemon instance.
type File struct {
	path string
}

// New returns the PID file name in dir. An empty dir means os.TempDir().
func New(dir, name string) *File {
	if dir == "" {
		dir = os.TempDir()
	}
	if name == "" {
		name = DefaultName
	}
	return &File{path: filepath.Join(dir, name)}
}

func (f *File) Path() string {
	return f.path
}

// Write writes the current process ID. It fails with ErrAlreadyRunning when
// the file names another live process; stale or unreadable files are
// replaced.
func (f *File) Write() error {
	self := os.Getpid()

	if other, ok := f.running(); ok && other != self {
		return errFactory.WithData(errors.ErrAlreadyRunning, other)
	}

	if err := os.WriteFile(f.path, []byte(strconv.Itoa(self)), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errFactory.Wrap(errors.ErrInternal, err)
	}
	return nil
}

func (f *File) running() (int, bool) {
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(bytes)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, false
	}

	// EPERM means the process exists but belongs to someone else.
	if err := process.Signal(syscall.Signal(0)); err != nil && !errors.Is(err, syscall.EPERM) {
		return 0, false
	}

	return pid, true
}
