// Package transport opens the byte stream a shell session runs over:
// a serial device or pseudo-terminal read and written one byte at a
// time. The shell core never depends on transport semantics beyond
// "one byte in, one byte out".
package transport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Port is an open serial device or pseudo-terminal in raw mode.
// It implements io.ByteWriter for use as a session output sink.
type Port struct {
	f *os.File
}

// Open opens the device at path for read/write without claiming it as
// controlling terminal, and switches it to raw mode: reads return one
// byte at a time with no echo and no line discipline.
func Open(path string) (*Port, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", path, err)
	}
	if err := makeRaw(fd); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("transport: raw mode on %s: %w", path, err)
	}
	return &Port{f: os.NewFile(uintptr(fd), path)}, nil
}

// FromFile wraps an already-open descriptor (for example a pty slave)
// without altering its terminal settings.
func FromFile(f *os.File) *Port {
	return &Port{f: f}
}

// makeRaw configures the descriptor the way cfmakeraw would: no echo,
// no canonical input, no signal or flow-control processing, reads
// blocking for exactly one byte.
func makeRaw(fd int) error {
	tio, err := getTermios(fd)
	if err != nil {
		return err
	}
	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Cflag &^= unix.CSIZE | unix.PARENB
	tio.Cflag |= unix.CS8
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	return setTermios(fd, tio)
}

// ReadByte blocks until one byte arrives.
func (p *Port) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := p.f.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// WriteByte pushes one byte out immediately.
func (p *Port) WriteByte(c byte) error {
	_, err := p.f.Write([]byte{c})
	return err
}

// Write pushes a full buffer out, satisfying io.Writer for callers
// that batch.
func (p *Port) Write(b []byte) (int, error) {
	return p.f.Write(b)
}

// Name returns the path the port was opened with.
func (p *Port) Name() string {
	return p.f.Name()
}

// Close releases the device.
func (p *Port) Close() error {
	return p.f.Close()
}
