package protocol

import (
	"bytes"
	"testing"
)

func TestHmacMD4(t *testing.T) {
	key := []byte("hunter2")
	msg := []byte("1234.000567 status")

	d1 := hmacMD4(key, msg)
	d2 := hmacMD4(key, msg)

	if len(d1) != DigestSize {
		t.Errorf("digest length = %d, want %d", len(d1), DigestSize)
	}
	if !bytes.Equal(d1, d2) {
		t.Errorf("digest not deterministic: %v != %v", d1, d2)
	}
	if bytes.Equal(d1, hmacMD4([]byte("other"), msg)) {
		t.Errorf("digest independent of key")
	}
	if bytes.Equal(d1, hmacMD4(key, []byte("1234.000567 quit"))) {
		t.Errorf("digest independent of message")
	}
}

func TestVerifyDigest(t *testing.T) {
	key := []byte("hunter2")
	msg := []byte("tok status")
	digest := hmacMD4(key, msg)

	tests := []struct {
		name   string
		key    []byte
		msg    []byte
		digest []byte
		want   bool
	}{
		{"match", key, msg, digest, true},
		{"wrong_key", []byte("nope"), msg, digest, false},
		{"wrong_message", key, []byte("tok quit"), digest, false},
		{"truncated", key, msg, digest[:8], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyDigest(tt.key, tt.msg, tt.digest); got != tt.want {
				t.Errorf("VerifyDigest() = %v, want %v", got, tt.want)
			}
		})
	}
}
