package cipher_test

import (
	"strings"
	"testing"

	"github.com/kingrea/routecipher/internal/cipher"
)

// BenchmarkEncrypt measures a full-size 254×254 grid.
func BenchmarkEncrypt(b *testing.B) {
	const n = cipher.MaxDimension - 1
	message := strings.Repeat("WE ARE DISCOVERED FLEE AT ONCE ", 2100)
	g, err := cipher.Fill(message, n, n)
	if err != nil {
		b.Fatalf("setup Fill failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cipher.Encrypt(g, cipher.Clockwise)
	}
}
