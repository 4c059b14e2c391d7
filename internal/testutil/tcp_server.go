// Package testutil contains helpers for exercising the engine over a
// real transport in tests.
package testutil

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

// NewLineServer starts a TCP listener that reads newline-delimited
// requests and replies with whatever handler returns, followed by a
// newline. It returns the listener's address and a shutdown func.
func NewLineServer(t *testing.T, handler func(req []byte) []byte) (string, func(t *testing.T)) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				errCh <- err
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				scanner := bufio.NewScanner(c)
				for scanner.Scan() {
					resp := handler(scanner.Bytes())
					if len(resp) == 0 {
						continue
					}
					if _, err := c.Write(append(resp, '\n')); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	return ln.Addr().String(), func(t *testing.T) {
		t.Helper()
		assert.NoError(t, ln.Close())
		<-errCh
	}
}
