// Command thingsetd hosts a thingset.Engine behind a line-oriented TCP
// listener: each line is a full request (binary requests are not
// representable as newline-delimited text, so this demo transport only
// exercises the `!`-prefixed text codec), the reply is written back
// followed by a newline.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	thingset "github.com/libresolar/thingset-go"
)

var (
	listenAddr = flag.String("l", "0.0.0.0:9001", "address to listen on")
	logLevel   = flag.String("log-level", "info", "logrus level: debug, info, warn, error")
)

func buildTable() (*thingset.Table, *string, *uint32, *string, *int32, *float32, *bool, *bool) {
	manufacturer := "Libre Solar"
	timestamp := uint32(0)
	deviceID := "0000-0000"
	i32 := int32(0)
	f32 := float32(0)
	loadEnTarget := false
	usbEnTarget := false

	objects := []thingset.Descriptor{
		{ID: 0x19, Name: "Manufacturer", Category: thingset.CategoryInfo, Access: thingset.AccessRead, Type: thingset.TypeText, Value: thingset.TextSlot{Ptr: &manufacturer, Capacity: 32}},
		{ID: 0x1A, Name: "Timestamp_s", Category: thingset.CategoryInfo, Access: thingset.AccessRead, Type: thingset.TypeUint32, Value: thingset.Uint32Slot{Ptr: &timestamp}},
		{ID: 0x1B, Name: "DeviceID", Category: thingset.CategoryInfo, Access: thingset.AccessRead | thingset.AccessWriteAuth, Type: thingset.TypeText, Value: thingset.TextSlot{Ptr: &deviceID, Capacity: 16}},
		{ID: 0x6004, Name: "i32", Category: thingset.CategoryConf, Access: thingset.AccessRead | thingset.AccessWrite, Type: thingset.TypeInt32, Value: thingset.Int32Slot{Ptr: &i32}},
		{ID: 0x6007, Name: "f32", Category: thingset.CategoryConf, Access: thingset.AccessRead | thingset.AccessWrite, Type: thingset.TypeFloat32, Detail: 2, Value: thingset.Float32Slot{Ptr: &f32}},
		{ID: 0x5001, Name: "dummy", Category: thingset.CategoryExec, Access: thingset.AccessExec, Type: thingset.TypeExec, Exec: func() { logrus.Debug("dummy executed") }},
		{ID: 0x7001, Name: "loadEnTarget", Category: thingset.CategoryInput, Access: thingset.AccessRead, Type: thingset.TypeBool, Value: thingset.BoolSlot{Ptr: &loadEnTarget}},
		{ID: 0x7002, Name: "usbEnTarget", Category: thingset.CategoryInput, Access: thingset.AccessRead, Type: thingset.TypeBool, Value: thingset.BoolSlot{Ptr: &usbEnTarget}},
	}
	return thingset.NewTable(objects), &manufacturer, &timestamp, &deviceID, &i32, &f32, &loadEnTarget, &usbEnTarget
}

func serveConn(c net.Conn, engine *thingset.Engine, log *logrus.Logger) {
	defer c.Close()
	scanner := bufio.NewScanner(c)
	resp := make([]byte, 512)
	for scanner.Scan() {
		req := scanner.Bytes()
		n := engine.Process(req, resp)
		if n == 0 {
			continue
		}
		if _, err := c.Write(resp[:n]); err != nil {
			log.Printf("write to %s: %v", c.RemoteAddr(), err)
			return
		}
		if _, err := c.Write([]byte("\n")); err != nil {
			log.Printf("write to %s: %v", c.RemoteAddr(), err)
			return
		}
	}
}

func main() {
	flag.Parse()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	table, _, _, _, _, _, _, _ := buildTable()
	channels := []thingset.Channel{
		{Name: "report", ObjectIDs: []uint16{0x6004, 0x6007}, Enabled: true},
	}
	engine := thingset.NewEngine(table, channels, "user123", "")
	engine.SetLogger(log)

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", *listenAddr, err)
	}
	fmt.Println("thingsetd listening on", *listenAddr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("accept: %v", err)
			continue
		}
		go serveConn(conn, engine, log)
	}
}
