package kummu

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Options represents the options that can be set when creating an MMU.
type Options struct {
	// Compression selects the codec for page images written to swap.
	Compression CompressAlgorithm

	// SwapPath backs swap space with a bolt file at this path. When empty,
	// swap lives in memory. The file is reset on open.
	SwapPath string

	// Timeout is the amount of time to wait to obtain a lock on the swap
	// file. When set to zero it will wait indefinitely.
	Timeout time.Duration

	// When enabled, the MMU performs a Check() after every operation that
	// changes its state and panics if the state is inconsistent. This has
	// a large performance impact so it should only be used for debugging.
	StrictMode bool

	// Logger defaults to the logrus standard logger.
	Logger *log.Logger
}

var DefaultOptions = &Options{
	Compression: CompSnappy,
	Timeout:     time.Second,
}

// MMU holds all simulator state: physical memory, the frame table, the
// swap table, the resident-leaf queue and the process table. A single
// mutex guards it since every translation step mutates the tables together.
type MMU struct {
	StrictMode bool

	mu sync.Mutex

	mem    []byte
	frames *frameTable
	swap   *swapTable
	leaves leafQueue
	procs  map[PID]FrameNum

	stats  counters
	log    *log.Entry
	closed bool
}

// New sizes physical memory and swap space, both in bytes. Each is divided
// into 4-byte pages; page 0 of each is reserved.
func New(memSize, swapSize uint32, options *Options) (*MMU, error) {
	if options == nil {
		options = DefaultOptions
	}
	if memSize%PageSize != 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "physical memory %d", memSize)
	}
	if swapSize%PageSize != 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "swap space %d", swapSize)
	}
	nframes, nslots := int(memSize/PageSize), int(swapSize/PageSize)
	if nframes > MaxFrames {
		return nil, errors.Wrapf(ErrInvalidSize, "%d frames do not fit a %d-frame entry", nframes, MaxFrames)
	}
	if nslots > MaxSlots {
		return nil, errors.Wrapf(ErrInvalidSize, "%d swap slots do not fit a %d-slot entry", nslots, MaxSlots)
	}

	compress, decompress, err := options.Compression.codec()
	if err != nil {
		return nil, err
	}
	var dev SwapDevice
	if options.SwapPath != "" {
		if dev, err = openBoltDevice(options.SwapPath, 0600, options.Timeout); err != nil {
			return nil, err
		}
	} else {
		dev = newMemDevice(segmentsFor(nslots))
	}

	logger := options.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	m := &MMU{
		StrictMode: options.StrictMode,
		mem:        make([]byte, memSize),
		frames:     newFrameTable(nframes),
		swap:       newSwapTable(nslots, dev, compress, decompress),
		procs:      make(map[PID]FrameNum),
		log:        logger.WithField("component", "mmu"),
	}
	m.log.WithFields(log.Fields{
		"frames":      nframes,
		"slots":       nslots,
		"compression": options.Compression,
		"swapPath":    options.SwapPath,
	}).Debug("mmu initialized")
	return m, nil
}

// PhysicalMemory returns the physical memory region. Frame f occupies
// bytes [4f, 4f+4).
func (m *MMU) PhysicalMemory() []byte {
	return m.mem
}

// Close releases the swap device. The MMU is unusable afterwards.
func (m *MMU) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if err := m.swap.dev.Close(); err != nil {
		m.log.Printf("kummu.Close(): swap device close error: %s", err)
		return err
	}
	return nil
}

func (m *MMU) page(f FrameNum) []byte {
	a := int(f.Addr())
	return m.mem[a : a+PageSize]
}

func (m *MMU) zero(f FrameNum) {
	p := m.page(f)
	for i := range p {
		p[i] = 0
	}
}

func (m *MMU) entry(f FrameNum, index int) Entry {
	return Entry(m.mem[int(f.Addr())+index])
}

func (m *MMU) setEntry(f FrameNum, index int, e Entry) {
	m.mem[int(f.Addr())+index] = byte(e)
}

// verify runs Check in strict mode.
func (m *MMU) verify() {
	if !m.StrictMode {
		return
	}
	if err := m.check(); err != nil {
		panic("kummu: " + err.Error())
	}
}
