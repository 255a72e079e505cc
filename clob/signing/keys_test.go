package signing

import (
	"strings"
	"testing"
)

func TestPrivateKeyFromHex(t *testing.T) {
	const key = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

	a, err := PrivateKeyFromHex(key)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := PrivateKeyFromHex("0x" + key)
	if err != nil {
		t.Fatalf("unexpected err with 0x prefix: %v", err)
	}
	if GetAddressFromPrivateKey(a) != GetAddressFromPrivateKey(b) {
		t.Fatalf("0x prefix changed the derived address")
	}

	for _, bad := range []string{"", "0x", key[:63], key + "00", strings.Repeat("z", 64)} {
		if _, err := PrivateKeyFromHex(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
		if ValidPrivateKeyHex(bad) {
			t.Fatalf("ValidPrivateKeyHex(%q) = true", bad)
		}
	}
}

func TestPrivateKeyFromHex_ErrorDoesNotEchoKey(t *testing.T) {
	bad := strings.Repeat("f", 64) // 超出曲线阶
	_, err := PrivateKeyFromHex(bad)
	if err == nil {
		t.Fatalf("expected error for out-of-range key")
	}
	if strings.Contains(err.Error(), bad) {
		t.Fatalf("error leaks key material: %v", err)
	}
}
