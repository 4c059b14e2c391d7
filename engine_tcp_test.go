package thingset

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libresolar/thingset-go/internal/testutil"
)

// TestEngineOverTCP drives a scenario Engine through a real TCP
// round trip via testutil.NewLineServer, exercising the same
// newline-framed request/response shape cmd/thingsetd serves.
func TestEngineOverTCP(t *testing.T) {
	_, e := newScenarioEngine()
	addr, shutdown := testutil.NewLineServer(t, func(req []byte) []byte {
		resp := make([]byte, 128)
		n := e.Process(req, resp)
		return resp[:n]
	})
	defer shutdown(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("!conf \"i32\"\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ":85 Content. 0\n", line)
}
