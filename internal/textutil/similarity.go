package textutil

import "strings"

// Similarity scores two titles in [0,1]: 1.0 for equal normalized forms, 0.8
// when one contains the other, otherwise the ratio of substring-overlapping
// tokens to the larger token count. The matcher's confidence tiers are
// calibrated against these exact values.
func Similarity(a, b string) float64 {
	na, nb := NormalizeTitle(a), NormalizeTitle(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}
	ta, tb := strings.Fields(na), strings.Fields(nb)
	matched := 0
	for _, x := range ta {
		for _, y := range tb {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				matched++
				break
			}
		}
	}
	longest := len(ta)
	if len(tb) > longest {
		longest = len(tb)
	}
	return float64(matched) / float64(longest)
}
