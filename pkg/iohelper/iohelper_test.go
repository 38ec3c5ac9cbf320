package iohelper

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestReadBodyLimitsSize(t *testing.T) {
	t.Parallel()

	data, err := ReadBody(strings.NewReader("0123456789"), 4)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if string(data) != "0123" {
		t.Errorf("got %q, want %q", data, "0123")
	}
}

func TestReadBodyNilReader(t *testing.T) {
	t.Parallel()

	data, err := ReadBody(nil, DefaultMaxBodySize)
	if err != nil {
		t.Fatalf("ReadBody(nil): %v", err)
	}
	if len(data) != 0 {
		t.Errorf("got %d bytes, want 0", len(data))
	}
}

type trackingCloser struct {
	io.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func TestDrainAndClose(t *testing.T) {
	t.Parallel()

	rc := &trackingCloser{Reader: bytes.NewReader(make([]byte, 1024))}
	if err := DrainAndClose(rc); err != nil {
		t.Fatalf("DrainAndClose: %v", err)
	}
	if !rc.closed {
		t.Error("reader not closed")
	}
	if n, _ := rc.Read(make([]byte, 1)); n != 0 {
		t.Error("reader not drained")
	}
}

func TestDrainAndCloseNil(t *testing.T) {
	t.Parallel()

	if err := DrainAndClose(nil); err != nil {
		t.Errorf("DrainAndClose(nil) = %v", err)
	}
}
