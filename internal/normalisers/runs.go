package normalisers

// Run is a maximal stretch of one character in a per-residue string.
// Positions are 0-based and inclusive.
type Run struct {
	Start int
	End   int
	Code  string
}

// Runs splits a per-residue string into runs of identical characters.
func Runs(s string) []Run {
	codes := []rune(s)
	var runs []Run
	for i := 0; i < len(codes); {
		j := i
		for j+1 < len(codes) && codes[j+1] == codes[i] {
			j++
		}
		runs = append(runs, Run{Start: i, End: j, Code: string(codes[i])})
		i = j + 1
	}
	return runs
}
