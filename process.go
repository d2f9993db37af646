package kummu

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PID identifies a simulated process.
type PID uint32

// Run returns the page directory frame of pid, allocating one the first
// time pid is seen. It must succeed before faults for pid are serviced.
// Directory frames are never evicted, but allocating one may evict a leaf.
func (m *MMU) Run(pid PID) (FrameNum, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	defer m.verify()

	if dir, ok := m.procs[pid]; ok {
		return dir, nil
	}
	dir, err := m.addPage(TypeDirectory)
	if err != nil {
		m.log.WithField("pid", pid).WithError(err).Warn("admission failed")
		return 0, errors.Wrapf(err, "admit pid %d", pid)
	}
	m.procs[pid] = dir
	m.stats.admissions++
	m.log.WithFields(log.Fields{"pid": pid, "frame": dir}).Debug("process admitted")
	return dir, nil
}

// Directory returns the page directory frame of an admitted process.
func (m *MMU) Directory(pid PID) (FrameNum, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, false
	}
	dir, ok := m.procs[pid]
	return dir, ok
}
