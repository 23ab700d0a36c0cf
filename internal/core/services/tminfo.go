package services

import (
	"time"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// DeriveTMInfo summarises a per-residue prediction string: residue counts
// and percentages of helix (H/h), strand (B/b) and signal peptide (S).
func DeriveTMInfo(prediction string, generatedAt time.Time) domain.TMInfo {
	info := domain.TMInfo{GeneratedAt: generatedAt}

	total := 0
	for _, c := range prediction {
		total++
		switch domain.Label(string(c)) {
		case domain.LabelHelixInOut, domain.LabelHelixOutIn:
			info.HelixCount++
		case domain.LabelBetaInOut, domain.LabelBetaOutIn:
			info.StrandCount++
		case domain.LabelSignalPeptide:
			info.SignalCount++
		}
	}

	if total > 0 {
		info.HelixPercent = percent(info.HelixCount, total)
		info.StrandPercent = percent(info.StrandCount, total)
		info.SignalPercent = percent(info.SignalCount, total)
	}
	info.HasAlphaHelix = info.HelixCount > 0
	info.HasBetaStrand = info.StrandCount > 0
	info.HasSignal = info.SignalCount > 0
	return info
}

func percent(n, total int) float64 {
	return float64(n) * 100 / float64(total)
}
