package otp

import (
	"testing"
)

func TestGenerateCode_SixDigits(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code length = %d, want 6", len(code))
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Errorf("code contains non-digit: %c", c)
		}
	}
}

func TestGenerateCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("50 generated codes were all identical")
	}
}

func TestHashCode_VerifyRoundTrip(t *testing.T) {
	digest, err := HashCode("123456")
	if err != nil {
		t.Fatalf("HashCode: %v", err)
	}

	if !VerifyCode("123456", digest) {
		t.Error("VerifyCode should accept the hashed code")
	}
	if VerifyCode("654321", digest) {
		t.Error("VerifyCode should reject a different code")
	}
}

func TestHashCode_Salted(t *testing.T) {
	d1, err := HashCode("123456")
	if err != nil {
		t.Fatalf("HashCode: %v", err)
	}
	d2, err := HashCode("123456")
	if err != nil {
		t.Fatalf("HashCode: %v", err)
	}
	if d1 == d2 {
		t.Error("two digests of the same code should differ (random salt)")
	}
}

func TestVerifyCode_MalformedDigest(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"!!!:???",
		"dmFsaWQ:",
	}
	for _, digest := range cases {
		if VerifyCode("123456", digest) {
			t.Errorf("VerifyCode accepted malformed digest %q", digest)
		}
	}
}
