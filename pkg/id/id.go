// Package id generates time-sortable identifiers for journal records.
package id

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader
)

func init() {
	// Seed from crypto/rand; ulid.Monotonic keeps ids generated within
	// the same millisecond lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptorand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string. Sorting by id sorts by creation time, which
// keeps manually entered trades in entry order.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	generated, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		panic(err)
	}
	return generated.String()
}
