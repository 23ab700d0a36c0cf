package domain

import "fmt"

// ResidueRange is one annotated span in canonical coordinates:
// 1-based, inclusive at both ends. It is a value type and never mutated.
type ResidueRange struct {
	// Start is the first residue position (1-based).
	Start int

	// End is the last residue position (1-based, inclusive).
	End int

	// Label is the topology code for every residue in the span.
	Label Label
}

// NewResidueRange builds a range and checks its structural invariant.
// It returns ErrInvalidRange when start < 1 or start > end.
func NewResidueRange(start, end int, label Label) (ResidueRange, error) {
	r := ResidueRange{Start: start, End: end, Label: label}
	if err := r.Validate(); err != nil {
		return ResidueRange{}, err
	}
	return r, nil
}

// Validate checks 1 <= Start <= End.
func (r ResidueRange) Validate() error {
	if r.Start < 1 || r.Start > r.End {
		return fmt.Errorf("%w: [%d,%d] %q", ErrInvalidRange, r.Start, r.End, string(r.Label))
	}
	return nil
}

// ValidateWithin checks 1 <= Start <= End <= length.
func (r ResidueRange) ValidateWithin(length int) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.End > length {
		return fmt.Errorf("%w: end %d beyond sequence length %d", ErrInvalidRange, r.End, length)
	}
	return nil
}

// Len returns the number of residues covered.
func (r ResidueRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether the 1-based position lies inside the range.
func (r ResidueRange) Contains(pos int) bool {
	return pos >= r.Start && pos <= r.End
}

// String formats the range as "start-end:label".
func (r ResidueRange) String() string {
	return fmt.Sprintf("%d-%d:%s", r.Start, r.End, string(r.Label))
}
