// Command thingset-cli sends a single text-encoded request to a
// thingsetd instance over TCP and prints the reply.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/pion/logging"
)

var (
	addr    = flag.String("addr", "127.0.0.1:9001", "thingsetd address")
	verbose = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(os.Stderr, os.Args[0], `-addr 127.0.0.1:9001 '!conf {"i32":50}'`)
	}
	flag.Parse()

	logLevel := logging.LogLevelInfo
	if *verbose {
		logLevel = logging.LogLevelDebug
	}
	log := logging.NewDefaultLeveledLoggerForScope("thingset-cli", logLevel, os.Stdout)

	request := strings.Join(flag.Args(), " ")
	if request == "" {
		fmt.Fprintln(os.Stderr, "no request specified")
		os.Exit(2)
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Errorf("dial %s: %v", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Debugf("sending: %s", request)
	if _, err := fmt.Fprintln(conn, request); err != nil {
		log.Errorf("write: %v", err)
		os.Exit(1)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		log.Errorf("read: %v", err)
		os.Exit(1)
	}
	fmt.Println(strings.TrimRight(reply, "\n"))
}
