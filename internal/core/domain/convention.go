package domain

import "fmt"

// CoordinateConvention describes how a source numbers residues.
// Every normaliser declares one and converts through it; no two sources
// are assumed to share a convention.
type CoordinateConvention struct {
	// ZeroBased is true when the first residue is numbered 0.
	ZeroBased bool

	// EndExclusive is true when the end position is one past the last residue.
	EndExclusive bool
}

var (
	// OneBasedInclusive is the canonical convention.
	OneBasedInclusive = CoordinateConvention{}

	// ZeroBasedInclusive numbers from 0 and includes the end.
	ZeroBasedInclusive = CoordinateConvention{ZeroBased: true}

	// ZeroBasedHalfOpen numbers from 0 and excludes the end (slice indices).
	ZeroBasedHalfOpen = CoordinateConvention{ZeroBased: true, EndExclusive: true}

	// OneBasedHalfOpen numbers from 1 and excludes the end.
	OneBasedHalfOpen = CoordinateConvention{EndExclusive: true}
)

// ToCanonical converts a span to 1-based inclusive positions.
// It performs no bounds checks.
func (c CoordinateConvention) ToCanonical(start, end int) (int, int) {
	if c.ZeroBased {
		start++
		end++
	}
	if c.EndExclusive {
		end--
	}
	return start, end
}

// String names the convention.
func (c CoordinateConvention) String() string {
	base := "1-based"
	if c.ZeroBased {
		base = "0-based"
	}
	if c.EndExclusive {
		return fmt.Sprintf("%s half-open", base)
	}
	return fmt.Sprintf("%s inclusive", base)
}
