package analysis

import "math"

// PersonalityCluster is the rule-based classification of the drawing session.
type PersonalityCluster struct {
	ID          int     `json:"cluster_id"`
	Type        string  `json:"personality_type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence_score"`
}

// CognitiveStyle describes how the person appears to process the task.
type CognitiveStyle struct {
	Style       string `json:"style"`
	Description string `json:"description"`
}

type SeriesStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

type Correlations struct {
	TimeStroke  float64 `json:"time_stroke_correlation"`
	TimeColor   float64 `json:"time_color_correlation"`
	StrokeColor float64 `json:"stroke_color_correlation"`
}

// StatisticalSummary holds descriptive statistics of the drawing behavior.
// Times are in minutes.
type StatisticalSummary struct {
	Time         SeriesStats  `json:"time_stats"`
	Strokes      SeriesStats  `json:"stroke_stats"`
	Colors       SeriesStats  `json:"color_stats"`
	Correlations Correlations `json:"correlations"`
}

var clusters = []PersonalityCluster{
	{ID: 0, Type: "Analytical", Description: "Detail-oriented, systematic, consistent"},
	{ID: 1, Type: "Creative", Description: "Expressive, colorful, varied approach"},
	{ID: 2, Type: "Efficient", Description: "Quick, decisive, minimalist"},
	{ID: 3, Type: "Thoughtful", Description: "Reflective, thorough, balanced"},
}

// ClusterPersonality maps the composite scores onto one of four predefined
// personality clusters.
func ClusterPersonality(c CompositeScores) PersonalityCluster {
	var id int
	var margin float64
	switch {
	case c.AttentionToDetail > 0.7 && c.BehavioralConsistency > 0.6:
		id = 0
		margin = (c.AttentionToDetail - 0.7) + (c.BehavioralConsistency - 0.6)
	case c.CreativeExpression > 0.6 && c.PsychologicalInvestment > 0.5:
		id = 1
		margin = (c.CreativeExpression - 0.6) + (c.PsychologicalInvestment - 0.5)
	case c.PsychologicalInvestment < 0.4 && c.BehavioralConsistency > 0.5:
		id = 2
		margin = (0.4 - c.PsychologicalInvestment) + (c.BehavioralConsistency - 0.5)
	default:
		id = 3
		margin = 0.1
	}

	cluster := clusters[id]
	// Confidence grows with how far the deciding scores sit from their
	// thresholds, capped well below certainty.
	cluster.Confidence = round2(math.Min(0.5+margin, 0.95))
	return cluster
}

// AssessCognitiveStyle classifies the processing style from the detail and
// consistency scores.
func AssessCognitiveStyle(c CompositeScores) CognitiveStyle {
	switch {
	case c.AttentionToDetail > 0.7 && c.BehavioralConsistency > 0.6:
		return CognitiveStyle{Style: "Systematic Processor", Description: "Methodical, thorough, detail-oriented"}
	case c.AttentionToDetail > 0.7:
		return CognitiveStyle{Style: "Complex Processor", Description: "Detailed but flexible approach"}
	case c.AttentionToDetail < 0.3:
		return CognitiveStyle{Style: "Global Processor", Description: "Big-picture focus, efficient processing"}
	default:
		return CognitiveStyle{Style: "Balanced Processor", Description: "Adaptive between detail and overview"}
	}
}

// Summarize computes descriptive statistics and pairwise correlations across
// the phases.
func Summarize(p Payload) StatisticalSummary {
	times := make([]float64, 0, len(p.Phases))
	strokes := make([]float64, 0, len(p.Phases))
	colors := make([]float64, 0, len(p.Phases))
	for _, ph := range p.Phases {
		times = append(times, float64(ph.TimeSpent)/60000)
		strokes = append(strokes, float64(ph.StrokeCount))
		colors = append(colors, float64(len(ph.ColorsUsed)))
	}
	return StatisticalSummary{
		Time:    seriesStats(times),
		Strokes: seriesStats(strokes),
		Colors:  seriesStats(colors),
		Correlations: Correlations{
			TimeStroke:  round3(correlation(times, strokes)),
			TimeColor:   round3(correlation(times, colors)),
			StrokeColor: round3(correlation(strokes, colors)),
		},
	}
}

func seriesStats(xs []float64) SeriesStats {
	if len(xs) == 0 {
		return SeriesStats{}
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return SeriesStats{
		Mean: round2(mean(xs)),
		Std:  round2(math.Sqrt(variance(xs))),
		Min:  round2(lo),
		Max:  round2(hi),
	}
}

// correlation is the Pearson coefficient; 0 when either series is constant.
func correlation(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := range xs {
		cov += (xs[i] - mx) * (ys[i] - my)
		vx += (xs[i] - mx) * (xs[i] - mx)
		vy += (ys[i] - my) * (ys[i] - my)
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
