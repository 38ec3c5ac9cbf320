package jsonutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string         `json:"name"`
		Count int            `json:"count"`
		Tags  map[string]int `json:"tags"`
	}
	in := payload{Name: "scan", Count: 3, Tags: map[string]int{"b": 2, "a": 1}}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out payload
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || len(out.Tags) != 2 {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestMarshalDeterministicMapOrder(t *testing.T) {
	t.Parallel()

	m := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}
	first, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Marshal(m)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("non-deterministic output:\n%s\n%s", first, again)
		}
	}
	if strings.Index(string(first), "alpha") > strings.Index(string(first), "zeta") {
		t.Errorf("map keys not sorted: %s", first)
	}
}

func TestEncoderAppendsNewline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Encode output missing trailing newline")
	}
}

func TestDecoder(t *testing.T) {
	t.Parallel()

	var v struct {
		K string `json:"k"`
	}
	dec := NewDecoder(strings.NewReader(`{"k":"v"}`))
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.K != "v" {
		t.Errorf("Decode: got %q", v.K)
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	if !Valid([]byte(`{"ok":true}`)) {
		t.Error("Valid rejected well-formed JSON")
	}
	if Valid([]byte(`{"broken":`)) {
		t.Error("Valid accepted truncated JSON")
	}
}
