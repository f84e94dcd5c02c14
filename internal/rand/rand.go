package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

const (
	bytesInUint64 = 8
	// URL-safe alphabet. 64 symbols, so masking a byte with 63 picks one without bias.
	charset     = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"
	charsetMask = 63
)

var defaultRandBytes = newRandBytes()

func newRandBytes() *randBytes {
	seed := make([]byte, bytesInUint64*2)

	if _, err := cryptorand.Read(seed); err != nil {
		panic("unreachable")
	}

	return &randBytes{
		//nolint:gosec // correlation ids are not secrets
		rng: rand.New(rand.NewPCG(
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		)),
		scratch: make([]byte, bytesInUint64),
	}
}

type randBytes struct {
	mut     sync.Mutex
	rng     *rand.Rand
	scratch []byte
}

// read fills buf entirely with random bytes.
func (rb *randBytes) read(buf []byte) {
	numUint64s := len(buf) / bytesInUint64
	remaining := len(buf) % bytesInUint64

	rb.mut.Lock()
	defer rb.mut.Unlock()

	for i := range numUint64s {
		binary.LittleEndian.PutUint64(buf[i*bytesInUint64:(i+1)*bytesInUint64], rb.rng.Uint64())
	}

	if remaining > 0 {
		binary.LittleEndian.PutUint64(rb.scratch, rb.rng.Uint64())
		copy(buf[numUint64s*bytesInUint64:], rb.scratch[:remaining])
	}
}

// NewCorrelationID returns a random URL-safe identifier of the given length. Drafts get
// one before they are sent so the request and the local echo can be matched.
func NewCorrelationID(length int) string {
	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	defaultRandBytes.read(buf)

	for i, b := range buf {
		buf[i] = charset[b&charsetMask]
	}

	return string(buf)
}
