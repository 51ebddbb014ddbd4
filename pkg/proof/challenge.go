package proof

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/arbor/pkg/errors"
)

// Challenge is a sequence of challenge bits, read least significant first.
type Challenge struct {
	bits *big.Int
}

// ParseChallenge reads a hex string with an optional 0x prefix. Digits need
// not come in pairs: odd-length input such as "a5c" is accepted and read as
// the number it spells.
func ParseChallenge(s string) (Challenge, error) {
	if err := errors.ValidateChallenge(s); err != nil {
		return Challenge{}, err
	}
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return Challenge{}, errors.New(errors.ErrCodeInvalidInput, "challenge must be hexadecimal: %q", s)
	}
	return Challenge{bits: n}, nil
}

// RandomChallenge draws a challenge covering the given number of rounds.
// A nil rng uses the global source.
func RandomChallenge(rng *rand.Rand, rounds int) Challenge {
	n := new(big.Int)
	for i := range rounds {
		var b uint64
		if rng != nil {
			b = rng.Uint64() & 1
		} else {
			b = rand.Uint64() & 1
		}
		n.SetBit(n, i, uint(b))
	}
	return Challenge{bits: n}
}

// Bit returns challenge bit i. Bits beyond the written digits are zero.
func (c Challenge) Bit(i int) uint {
	if c.bits == nil {
		return 0
	}
	return c.bits.Bit(i)
}

// String returns the challenge as lowercase hex without a prefix.
func (c Challenge) String() string {
	if c.bits == nil {
		return "0"
	}
	return fmt.Sprintf("%x", c.bits)
}
