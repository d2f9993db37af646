package kummu

import "github.com/pkg/errors"

// SwapDevice stores encoded swap segments by number. A segment that was
// never written reads back as nil. The swap table owns all slot metadata;
// a device only holds bytes.
type SwapDevice interface {
	ReadSegment(n int) ([]byte, error)
	WriteSegment(n int, data []byte) error
	Close() error
}

type memDevice struct {
	segments [][]byte
}

func newMemDevice(n int) *memDevice {
	return &memDevice{segments: make([][]byte, n)}
}

func (d *memDevice) ReadSegment(n int) ([]byte, error) {
	if n < 0 || n >= len(d.segments) {
		return nil, errors.Errorf("segment %d out of range", n)
	}
	return d.segments[n], nil
}

func (d *memDevice) WriteSegment(n int, data []byte) error {
	if n < 0 || n >= len(d.segments) {
		return errors.Errorf("segment %d out of range", n)
	}
	d.segments[n] = append(d.segments[n][:0], data...)
	return nil
}

func (d *memDevice) Close() error {
	d.segments = nil
	return nil
}
