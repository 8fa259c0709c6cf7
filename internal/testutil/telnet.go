package testutil

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cory-johannsen/vestige/internal/frontend/telnet"
)

// TelnetClient is a Telnet test client. A background reader collects server
// output with IAC sequences and ANSI styling removed.
type TelnetClient struct {
	conn net.Conn
	t    *testing.T

	mu      sync.Mutex
	pending string
	readErr error
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v [%s]", addr, err, time.Since(start))
	}
	t.Logf("telnet client connected to %s [%s]", addr, time.Since(start))
	return WrapTelnetConn(t, conn)
}

// WrapTelnetConn drives an existing connection, such as one end of net.Pipe.
//
// Postcondition: The connection is closed when the test ends.
func WrapTelnetConn(t *testing.T, conn net.Conn) *TelnetClient {
	c := &TelnetClient{conn: conn, t: t}
	t.Cleanup(func() {
		conn.Close()
	})
	go c.readLoop()
	return c
}

func (c *TelnetClient) readLoop() {
	tmp := make([]byte, 4096)
	for {
		n, err := c.conn.Read(tmp)
		c.mu.Lock()
		if n > 0 {
			c.pending = telnet.StripANSI(c.pending + string(telnet.FilterIAC(tmp[:n])))
		}
		if err != nil {
			c.readErr = err
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// ReadUntil waits until substr appears in the unconsumed output. It returns
// the output up to and including the match; the rest stays pending.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the accumulated output containing substr, or fails on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		c.mu.Lock()
		if i := strings.Index(c.pending, substr); i >= 0 {
			out := c.pending[:i+len(substr)]
			c.pending = c.pending[i+len(substr):]
			c.mu.Unlock()
			return out
		}
		pending, readErr := c.pending, c.readErr
		c.mu.Unlock()

		if readErr != nil || time.Now().After(deadline) {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, pending, readErr)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Expect is ReadUntil with a two-second timeout.
func (c *TelnetClient) Expect(substr string) string {
	c.t.Helper()
	return c.ReadUntil(substr, 2*time.Second)
}

// Send writes a line of text to the server, appending \r\n.
//
// Precondition: text should not contain trailing newline characters.
// Postcondition: text + \r\n is written to the connection.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_, err := fmt.Fprintf(c.conn, "%s\r\n", text)
	if err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
