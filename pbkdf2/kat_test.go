package pbkdf2

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// Known-answer vectors generated from the reference implementation with
// the classic RFC 6070 password/salt pair.
func TestKeyKAT(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "2303c9b975472c91573580b494040bf18f4a15445ba765bf2abafb1f16379940"},
		{2, "3dba69884a039e5ba4bddbfcf21a7833cbc0140ca8f88eb25a490d32aa590e56"},
		{4, "69c858c9556ff1b65a59491a14476b8c570ea19e69248bdf8a28b7732179f4a8"},
	}
	for _, tt := range tests {
		got := Key([]byte("password"), []byte("salt"), tt.count, 32)
		if hex.EncodeToString(got) != tt.want {
			t.Fatalf("count=%d KAT mismatch\n got: %x\nwant: %s", tt.count, got, tt.want)
		}
	}
}

func TestKeyTruncationIsPrefix(t *testing.T) {
	full := Key([]byte("password"), []byte("salt"), 1, 32)
	short := Key([]byte("password"), []byte("salt"), 1, 10)
	if !bytes.Equal(short, full[:10]) {
		t.Fatal("10-byte output is not a prefix of the 32-byte output")
	}
}
