/*
	`guid.New` generates short identifiers used to correlate log lines
	from one orchestration run.

	IDs are lowercase, punctuation-free (except a dash for the eyes),
	and roughly chronologically sortable -- they cluster, which is a
	politeness to humans grepping logs, not a monotonicity guarantee.
	These are *not* uids in any rfc4122 sense of the word.
*/
package guid

import (
	realrand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

// base32 space; ascii-ordered; glyphs that can pass for vertical lines
// removed with prejudice.
var chars = [32]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'k', 'm',
	'n', 'o', 'p', 'q', 'r', 's', 't', 'v', 'w', 'x',
	'y', 'z',
}

const radix = 32

// timexxxx-randxxxx
const size = 8 + 1 + 8

var (
	mu         sync.Mutex
	lastTimeMs int64
	lastRand   [8]byte
	rnd        *rand.Rand
)

func init() {
	var seed int64
	binary.Read(realrand.Reader, binary.LittleEndian, &seed)
	rnd = rand.New(rand.NewSource(seed))
	for i := range lastRand {
		lastRand[i] = byte(rnd.Intn(radix))
	}
}

func New() string {
	var id [size]byte
	id[8] = '-'
	mu.Lock()
	timeMs := time.Now().UTC().UnixNano() / 1e6
	if timeMs == lastTimeMs {
		// multiple ids in the same millisecond increment the random
		// part, so ids stay unique and ordered within the burst
		for i := range lastRand {
			lastRand[i]++
			if lastRand[i] < radix {
				break
			}
			lastRand[i] = 0
		}
	} else {
		lastTimeMs = timeMs
		for i := range lastRand {
			lastRand[i] = byte(rnd.Intn(radix))
		}
	}
	for i := 0; i < 8; i++ {
		id[size-i-1] = chars[lastRand[i]]
	}
	mu.Unlock()
	for i := 7; i >= 0; i-- {
		id[i] = chars[int(timeMs%radix)]
		timeMs = timeMs / radix
	}
	return string(id[:])
}
