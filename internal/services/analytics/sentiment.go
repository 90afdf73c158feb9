package analytics

import (
	"strings"

	"github.com/jonreiter/govader"

	"StockPulse/internal/domain/models"
)

// Keyword lists that bias the lexicon score toward financial vocabulary the
// general-purpose lexicon underweights.
var (
	negativeKeywords = []string{
		"fall", "drop", "crash", "plunge", "slump", "decline", "loss",
		"sell-off", "bearish", "fraud", "scandal", "investigation", "debt",
		"bankruptcy",
	}
	positiveKeywords = []string{
		"surge", "rally", "jump", "soar", "bullish", "profit", "gain",
		"dividend", "buyback", "merger", "acquisition", "growth", "beat",
		"record",
	}
)

const (
	fearAmplifier       = 2.2
	optimismAmplifier   = 1.1
	negativeKeywordBias = -0.15
	positiveKeywordBias = 0.10
)

// SentimentScorer scores headlines with a VADER lexicon analyzer plus
// financial keyword and fear-bias adjustments.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewSentimentScorer builds a scorer with the default lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// ScoreHeadline scores one headline: lexicon compound, amplified asymmetric
// to model the market's stronger reaction to bad news, shifted per keyword
// hit and clamped to [-1, 1].
func (s *SentimentScorer) ScoreHeadline(headline string) models.HeadlineScore {
	compound := s.analyzer.PolarityScores(headline).Compound

	adjusted := compound * optimismAmplifier
	if compound < 0 {
		adjusted = compound * fearAmplifier
	}

	lower := strings.ToLower(headline)
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			adjusted += negativeKeywordBias
		}
	}
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			adjusted += positiveKeywordBias
		}
	}

	if adjusted > 1 {
		adjusted = 1
	} else if adjusted < -1 {
		adjusted = -1
	}
	return models.HeadlineScore{Headline: headline, Compound: compound, Adjusted: adjusted}
}

// Score aggregates headline scores into a labeled report. No headlines means
// a neutral zero-score report.
func (s *SentimentScorer) Score(headlines []string) models.SentimentReport {
	if len(headlines) == 0 {
		return models.SentimentReport{Label: "Neutral", Detail: "Insufficient data"}
	}

	scored := make([]models.HeadlineScore, 0, len(headlines))
	var sum float64
	for _, h := range headlines {
		hs := s.ScoreHeadline(h)
		scored = append(scored, hs)
		sum += hs.Adjusted
	}
	avg := sum / float64(len(scored))

	label, detail := sentimentLabel(avg)
	return models.SentimentReport{
		Score:     avg,
		Label:     label,
		Detail:    detail,
		Headlines: scored,
		Count:     len(scored),
	}
}

func sentimentLabel(score float64) (string, string) {
	switch {
	case score > 0.15:
		return "Bullish", "Strong positive sentiment with clear accumulation signals."
	case score < -0.15:
		return "Bearish", "Significant negative sentiment. Distribution pressure detected."
	case score > 0.05:
		return "Slightly Bullish", "Mildly positive sentiment with cautious optimism."
	case score < -0.05:
		return "Slightly Bearish", "Mildly negative sentiment with some caution."
	default:
		return "Neutral", "Mixed news flow. No strong directional bias detected."
	}
}
