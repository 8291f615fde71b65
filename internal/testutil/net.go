package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"
)

// FreeAddr returns a loopback "host:port" that was free a moment ago,
// for servers that insist on binding the address themselves.
func FreeAddr(tb testing.TB) string {
	tb.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("reserving a TCP port: %v", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		tb.Fatalf("releasing %s: %v", addr, err)
	}
	return addr
}

// WaitForTCPReady polls addr until it accepts a connection or timeout
// passes. Use it instead of time.Sleep after starting a server in a
// goroutine.
func WaitForTCPReady(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err == nil {
			return conn.Close()
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("waiting for server at %s: %w", addr, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
