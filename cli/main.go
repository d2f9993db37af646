package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"kummu"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run returns the process exit code. The MMU is always closed before it
// returns, so a bolt swap file is released even on failure.
func run(args []string, in io.Reader, out io.Writer) int {
	fs := flag.NewFlagSet("kummu", flag.ContinueOnError)
	var (
		memSize  = fs.Uint("mem", 64, "physical memory size in bytes")
		swapSize = fs.Uint("swap", 128, "swap space size in bytes")
		swapPath = fs.String("swapfile", "", "back swap space with a bolt file")
		comp     = fs.String("compression", "snappy", "swap segment compression: snappy, lz4 or none")
		strict   = fs.Bool("strict", false, "check invariants after every operation")
		verbose  = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	alg, err := parseCompression(*comp)
	if err != nil {
		log.Error(err)
		return 2
	}
	m, err := kummu.New(uint32(*memSize), uint32(*swapSize), &kummu.Options{
		Compression: alg,
		SwapPath:    *swapPath,
		Timeout:     kummu.DefaultOptions.Timeout,
		StrictMode:  *strict,
	})
	if err != nil {
		log.Error(err)
		return 1
	}

	code := 0
	if err := replay(m, in, out); err != nil {
		log.Error(err)
		code = 1
	}
	if err := m.Close(); err != nil {
		log.Error(err)
		code = 1
	}
	return code
}

func parseCompression(s string) (kummu.CompressAlgorithm, error) {
	switch s {
	case "snappy":
		return kummu.CompSnappy, nil
	case "lz4":
		return kummu.CompLz4, nil
	case "none":
		return kummu.CompNone, nil
	}
	return 0, errors.Errorf("unknown compression %q", s)
}

// replay executes one command per line. Failed operations are reported
// and replay continues; malformed lines stop it.
func replay(m *kummu.MMU, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		result, err := execute(m, strings.Fields(text))
		switch {
		case errors.Is(err, errUsage):
			return errors.Wrapf(err, "line %d", line)
		case err != nil:
			fmt.Fprintf(out, "%s: error: %v\n", text, err)
		default:
			fmt.Fprintf(out, "%s: %s\n", text, result)
		}
	}
	return scanner.Err()
}

var errUsage = errors.New("usage")

func execute(m *kummu.MMU, args []string) (string, error) {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "run":
		if len(args) != 1 {
			return "", errors.Wrap(errUsage, "run <pid>")
		}
		pid, err := parsePID(args[0])
		if err != nil {
			return "", err
		}
		dir, err := m.Run(pid)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("directory frame %d", dir), nil

	case "fault", "map", "read", "translate":
		if len(args) != 2 {
			return "", errors.Wrapf(errUsage, "%s <pid> <va>", cmd)
		}
		pid, va, err := parsePIDAddr(args[0], args[1])
		if err != nil {
			return "", err
		}
		switch cmd {
		case "fault":
			return "ok", m.Fault(pid, va)
		case "map":
			return "ok", m.Map(pid, va)
		case "read":
			b, err := m.Read(pid, va)
			return strconv.Itoa(int(b)), err
		default:
			pa, err := m.Translate(pid, va)
			return fmt.Sprintf("physical %d", pa), err
		}

	case "write":
		if len(args) != 3 {
			return "", errors.Wrap(errUsage, "write <pid> <va> <byte>")
		}
		pid, va, err := parsePIDAddr(args[0], args[1])
		if err != nil {
			return "", err
		}
		b, err := strconv.ParseUint(args[2], 0, 8)
		if err != nil {
			return "", errors.Wrap(errUsage, err.Error())
		}
		return "ok", m.Write(pid, va, byte(b))

	case "stats":
		s := m.Stats()
		return fmt.Sprintf("faults=%d swapins=%d swapouts=%d free=%d/%d resident=%d freeslots=%d/%d procs=%d",
			s.Faults, s.SwapIns, s.SwapOuts, s.FreeFrames, s.Frames, s.ResidentLeaves, s.FreeSlots, s.Slots, s.Processes), nil

	case "check":
		return "consistent", m.Check()
	}
	return "", errors.Wrapf(errUsage, "unknown command %q", cmd)
}

func parsePID(s string) (kummu.PID, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrap(errUsage, err.Error())
	}
	return kummu.PID(v), nil
}

func parsePIDAddr(p, a string) (kummu.PID, kummu.VirtAddr, error) {
	pid, err := parsePID(p)
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseUint(a, 0, 8)
	if err != nil {
		return 0, 0, errors.Wrap(errUsage, err.Error())
	}
	return pid, kummu.VirtAddr(v), nil
}
