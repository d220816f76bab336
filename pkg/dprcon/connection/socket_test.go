package connection

import (
	"net"
	"time"
)

type fakeAddr string

func (a fakeAddr) Network() string { return "udp" }
func (a fakeAddr) String() string  { return string(a) }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

//fakeSocket scripts reads and records every call so tests can assert
//that buffered responses never touch the socket
type fakeSocket struct {
	reads       [][]byte
	writes      [][]byte
	readCalls   int
	writeCalls  int
	closed      bool
	onRead      func()
	deadlineErr error
}

func (s *fakeSocket) Read(b []byte) (int, error) {
	s.readCalls++
	if s.onRead != nil {
		s.onRead()
	}
	if len(s.reads) == 0 {
		return 0, timeoutError{}
	}
	n := copy(b, s.reads[0])
	s.reads = s.reads[1:]
	return n, nil
}

func (s *fakeSocket) Write(b []byte) (int, error) {
	s.writeCalls++
	s.writes = append(s.writes, append([]byte(nil), b...))
	return len(b), nil
}

func (s *fakeSocket) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSocket) LocalAddr() net.Addr { return fakeAddr("127.0.0.1:26000") }

func (s *fakeSocket) SetReadDeadline(t time.Time) error { return s.deadlineErr }
