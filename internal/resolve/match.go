package resolve

import (
	"rewatch/internal/textutil"
)

// Match methods, recorded for audit trails only.
const (
	MethodExact          = "exact"
	MethodExactPart      = "exact-part"
	MethodCombined       = "combined"
	MethodSplit          = "split"
	MethodPrefixPart     = "prefix-part"
	MethodPrefixCombined = "prefix-combined"
	MethodFuzzy          = "fuzzy"
	MethodCrossSeason    = "cross-season"
	MethodPilot          = "pilot"
	MethodManual         = "manual"
	MethodDefault        = "default"
)

// AutoAcceptConfidence is the fixed accept threshold. Matches below it
// require interactive resolution by the caller; the matcher never prompts.
const AutoAcceptConfidence = 0.7

// fuzzyFloor is the minimum fuzzy-tier score worth returning at all.
const fuzzyFloor = 0.5

// MatchResult is a proposed canonical episode with its confidence and the
// method that produced it.
type MatchResult struct {
	Season     int
	Episode    int
	Confidence float64
	Method     string
}

// MatchEpisode matches a raw episode description against one season of the
// index. partHint and episodeHint are 0 when the source supplied none.
// Returns nil when the title carries no matching signal or nothing scores
// high enough.
func MatchEpisode(index EpisodeIndex, season int, rawTitle string, partHint, episodeHint int, seriesName string) *MatchResult {
	clean := textutil.CleanEpisodeTitle(rawTitle, seriesName)
	if clean.IsGeneric {
		return nil
	}
	if clean.IsPilot && episodeHint == 1 {
		return &MatchResult{Season: season, Episode: 1, Confidence: 0.8, Method: MethodPilot}
	}

	rawBase, rawPart := baseAndPart(clean.Title, partHint)
	if rawBase == "" {
		return nil
	}

	var (
		exact          *MatchResult
		prefixPart     *MatchResult
		prefixCombined *MatchResult
		fuzzyBest      *MatchResult
	)

	for _, candidate := range index[season] {
		candBase, candPart := baseAndPart(candidate.Title, 0)
		score := textutil.Similarity(rawBase, candBase)

		if score >= 0.9 || rawBase == candBase {
			if result := exactTier(season, candidate.Number, rawPart, candPart); result != nil {
				if exact == nil || result.Confidence > exact.Confidence {
					exact = result
				}
				continue
			}
			// Both sides carry parts that disagree; fall through to fuzzy
			// with the mismatch penalty.
		} else if textutil.IsTitlePrefix(rawBase, candBase) || textutil.IsTitlePrefix(candBase, rawBase) {
			switch {
			case rawPart > 0 && candPart > 0 && rawPart == candPart:
				if prefixPart == nil {
					prefixPart = &MatchResult{Season: season, Episode: candidate.Number, Confidence: 0.85, Method: MethodPrefixPart}
				}
			case rawPart > 0 && candPart == 0:
				if prefixCombined == nil {
					prefixCombined = &MatchResult{Season: season, Episode: candidate.Number, Confidence: 0.6, Method: MethodPrefixCombined}
				}
			}
		}

		if rawPart > 0 && candPart > 0 && rawPart != candPart {
			score /= 2
		}
		if fuzzyBest == nil || score > fuzzyBest.Confidence {
			fuzzyBest = &MatchResult{Season: season, Episode: candidate.Number, Confidence: score, Method: MethodFuzzy}
		}
	}

	switch {
	case exact != nil:
		return exact
	case prefixPart != nil:
		return prefixPart
	case prefixCombined != nil:
		return prefixCombined
	case fuzzyBest != nil && fuzzyBest.Confidence >= fuzzyFloor:
		return fuzzyBest
	}
	return nil
}

// exactTier scores an exact-tier candidate, or returns nil when both sides
// carry part numbers that disagree.
func exactTier(season, episode, rawPart, candPart int) *MatchResult {
	switch {
	case rawPart > 0 && candPart > 0 && rawPart == candPart:
		return &MatchResult{Season: season, Episode: episode, Confidence: 1.0, Method: MethodExactPart}
	case rawPart > 0 && candPart == 0:
		return &MatchResult{Season: season, Episode: episode, Confidence: 0.7, Method: MethodCombined}
	case rawPart == 0 && candPart > 0:
		return &MatchResult{Season: season, Episode: episode, Confidence: 0.7, Method: MethodSplit}
	case rawPart == 0 && candPart == 0:
		return &MatchResult{Season: season, Episode: episode, Confidence: 1.0, Method: MethodExact}
	}
	return nil
}

func baseAndPart(title string, partHint int) (string, int) {
	base, part, ok := textutil.ExtractPartNumber(title)
	if !ok {
		base, part = title, 0
	}
	if partHint > 0 {
		part = partHint
	}
	return textutil.NormalizeTitle(base), part
}

// MatchAcrossSeasons tries the hinted season first and accepts immediately at
// or above the auto-accept threshold. Otherwise it scans every other season
// in ascending order and returns the first strictly-highest qualifying
// candidate as a cross-season match. When no season qualifies, the hinted
// season's candidate (if any, even low-confidence) is passed through for the
// caller to route to interactive selection.
func MatchAcrossSeasons(index EpisodeIndex, seasonHint int, rawTitle string, partHint, episodeHint int, seriesName string) *MatchResult {
	hinted := MatchEpisode(index, seasonHint, rawTitle, partHint, episodeHint, seriesName)
	if hinted != nil && hinted.Confidence >= AutoAcceptConfidence {
		return hinted
	}

	var best *MatchResult
	for _, season := range index.Seasons() {
		if season == seasonHint {
			continue
		}
		result := MatchEpisode(index, season, rawTitle, partHint, episodeHint, seriesName)
		if result == nil || result.Confidence < AutoAcceptConfidence {
			continue
		}
		if best == nil || result.Confidence > best.Confidence {
			best = result
		}
	}
	if best != nil {
		best.Method = MethodCrossSeason
		return best
	}
	return hinted
}
