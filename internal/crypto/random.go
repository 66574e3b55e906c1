package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
)

var (
	ErrInvalidRange            = errors.New("max must be greater than min")
	ErrRandomSourceUnavailable = errors.New("secure random source unavailable")
)

// RandomInRange returns a uniformly distributed integer in [min, max) using
// crypto/rand. Values are produced by rejection sampling so that no residue
// is favoured when 256^k is not a multiple of the range.
func RandomInRange(min, max int) (int, error) {
	return randomInRange(rand.Reader, min, max)
}

func randomInRange(src io.Reader, min, max int) (int, error) {
	if max <= min {
		return 0, ErrInvalidRange
	}

	// Unsigned arithmetic keeps the full int domain representable.
	span := uint64(max) - uint64(min)
	size := (bits.Len64(span-1) + 7) / 8
	if size == 0 {
		size = 1
	}
	limit, acceptAll := rejectionLimit(span, size)

	var buf [8]byte
	for {
		if _, err := io.ReadFull(src, buf[8-size:]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrRandomSourceUnavailable, err)
		}
		value := binary.BigEndian.Uint64(buf[:])
		if !acceptAll && value >= limit {
			continue
		}
		return int(uint64(min) + value%span), nil
	}
}

// rejectionLimit returns the largest multiple of span not exceeding 256^size.
// acceptAll is set when 256^size == 2^64 is itself a multiple of span.
func rejectionLimit(span uint64, size int) (limit uint64, acceptAll bool) {
	if size == 8 {
		rem := -span % span // 2^64 mod span
		if rem == 0 {
			return 0, true
		}
		return -rem, false
	}
	total := uint64(1) << (8 * size)
	return total - total%span, false
}
