package analysis

import "math"

// Scoring weights and normalization constants for the composite scores.
const (
	maxSessionMinutes = 15.0 // time investment saturates here
	maxTotalStrokes   = 300.0
	maxIntensity      = 60.0 // activity units per minute
)

// PhasePriority ranks one psychological domain by time investment.
type PhasePriority struct {
	Domain  string  `json:"domain"`
	Minutes float64 `json:"time_minutes"`
	Rank    int     `json:"priority_rank"`
}

type TimeFeatures struct {
	TotalMinutes   float64         `json:"total_time"`
	AverageMinutes float64         `json:"average_time"`
	Variance       float64         `json:"time_variance"`
	PerPhase       []float64       `json:"time_distribution"`
	Priorities     []PhasePriority `json:"phase_priorities"`
	Efficiency     float64         `json:"time_efficiency_score"`
}

type ComplexityFeatures struct {
	TotalStrokes      int     `json:"total_strokes"`
	AverageStrokes    float64 `json:"average_strokes"`
	Variance          float64 `json:"stroke_variance"`
	DetailProgression float64 `json:"detail_progression"`
	Score             float64 `json:"complexity_score"`
	ArtisticIntensity float64 `json:"artistic_intensity"`
}

type ColorFeatures struct {
	TotalUnique     int     `json:"total_unique_colors"`
	PerPhase        []int   `json:"color_per_phase"`
	Diversity       float64 `json:"color_diversity_score"`
	ExpressionLevel string  `json:"emotional_expression_level"`
	Consistency     float64 `json:"color_consistency"`
}

type ConsistencyFeatures struct {
	Time    float64 `json:"time_consistency"`
	Stroke  float64 `json:"stroke_consistency"`
	Color   float64 `json:"color_consistency"`
	Overall float64 `json:"overall_consistency"`
}

type CompositeScores struct {
	PsychologicalInvestment float64 `json:"psychological_investment"`
	CreativeExpression      float64 `json:"creative_expression"`
	BehavioralConsistency   float64 `json:"behavioral_consistency"`
	AttentionToDetail       float64 `json:"attention_to_detail"`
}

type Features struct {
	Time        TimeFeatures        `json:"time_features"`
	Complexity  ComplexityFeatures  `json:"complexity_features"`
	Color       ColorFeatures       `json:"color_features"`
	Consistency ConsistencyFeatures `json:"consistency_features"`
	Composite   CompositeScores     `json:"composite_scores"`
}

// ExtractFeatures derives all numeric indicators from a validated payload.
func ExtractFeatures(p Payload) Features {
	tf := extractTimeFeatures(p)
	cx := extractComplexityFeatures(p)
	cf := extractColorFeatures(p)
	cs := extractConsistencyFeatures(p)

	return Features{
		Time:        tf,
		Complexity:  cx,
		Color:       cf,
		Consistency: cs,
		Composite:   compositeScores(tf, cx, cf, cs),
	}
}

// Priority domain labels, indexed by phase number.
var priorityDomains = map[int]string{
	1: "Home & Security",
	2: "Personal Growth",
	3: "Self-Image",
}

func extractTimeFeatures(p Payload) TimeFeatures {
	minutes := make([]float64, 0, len(p.Phases))
	totalStrokes := 0
	for _, ph := range p.Phases {
		minutes = append(minutes, float64(ph.TimeSpent)/60000)
		totalStrokes += ph.StrokeCount
	}

	prios := make([]PhasePriority, 0, len(p.Phases))
	for i, ph := range p.Phases {
		prios = append(prios, PhasePriority{Domain: priorityDomains[ph.Phase], Minutes: minutes[i]})
	}
	// Highest time investment first.
	for i := 0; i < len(prios); i++ {
		for j := i + 1; j < len(prios); j++ {
			if prios[j].Minutes > prios[i].Minutes {
				prios[i], prios[j] = prios[j], prios[i]
			}
		}
	}
	for i := range prios {
		prios[i].Rank = i + 1
	}

	efficiency := 0.0
	if totalStrokes > 0 {
		efficiency = sum(minutes) / float64(totalStrokes)
	}

	return TimeFeatures{
		TotalMinutes:   sum(minutes),
		AverageMinutes: mean(minutes),
		Variance:       variance(minutes),
		PerPhase:       minutes,
		Priorities:     prios,
		Efficiency:     efficiency,
	}
}

func extractComplexityFeatures(p Payload) ComplexityFeatures {
	strokes := make([]float64, 0, len(p.Phases))
	coverage := make([]float64, 0, len(p.Phases))
	total := 0
	activity := 0.0
	totalMinutes := 0.0
	for _, ph := range p.Phases {
		strokes = append(strokes, float64(ph.StrokeCount))
		coverage = append(coverage, ph.Coverage)
		total += ph.StrokeCount
		activity += float64(ph.StrokeCount + len(ph.ColorsUsed))
		totalMinutes += float64(ph.TimeSpent) / 60000
	}

	// How the level of detail shifts from phase to phase (mean of successive
	// differences).
	progression := 0.0
	if len(strokes) >= 2 {
		for i := 1; i < len(strokes); i++ {
			progression += strokes[i] - strokes[i-1]
		}
		progression /= float64(len(strokes) - 1)
	}

	intensity := 0.0
	if totalMinutes > 0 {
		intensity = activity / totalMinutes
	}

	return ComplexityFeatures{
		TotalStrokes:      total,
		AverageStrokes:    mean(strokes),
		Variance:          variance(strokes),
		DetailProgression: progression,
		Score:             clamp01((mean(strokes)/100 + mean(coverage)/100) / 2),
		ArtisticIntensity: intensity,
	}
}

func extractColorFeatures(p Payload) ColorFeatures {
	var all []string
	perPhase := make([]int, 0, len(p.Phases))
	counts := make([]float64, 0, len(p.Phases))
	for _, ph := range p.Phases {
		all = append(all, ph.ColorsUsed...)
		perPhase = append(perPhase, len(ph.ColorsUsed))
		counts = append(counts, float64(len(ph.ColorsUsed)))
	}

	unique := make(map[string]struct{}, len(all))
	for _, c := range all {
		unique[c] = struct{}{}
	}

	return ColorFeatures{
		TotalUnique:     len(unique),
		PerPhase:        perPhase,
		Diversity:       colorDiversity(all),
		ExpressionLevel: expressionLevel(mean(counts)),
		Consistency:     consistencyOf(counts),
	}
}

func extractConsistencyFeatures(p Payload) ConsistencyFeatures {
	times := make([]float64, 0, len(p.Phases))
	strokes := make([]float64, 0, len(p.Phases))
	colors := make([]float64, 0, len(p.Phases))
	for _, ph := range p.Phases {
		times = append(times, float64(ph.TimeSpent))
		strokes = append(strokes, float64(ph.StrokeCount))
		colors = append(colors, float64(len(ph.ColorsUsed)))
	}

	tc := consistencyOf(times)
	sc := consistencyOf(strokes)
	cc := consistencyOf(colors)
	return ConsistencyFeatures{
		Time:    tc,
		Stroke:  sc,
		Color:   cc,
		Overall: (tc + sc + cc) / 3,
	}
}

func compositeScores(tf TimeFeatures, cx ComplexityFeatures, cf ColorFeatures, cs ConsistencyFeatures) CompositeScores {
	return CompositeScores{
		PsychologicalInvestment: clamp01(tf.TotalMinutes/maxSessionMinutes*0.4 + cx.Score*0.6),
		CreativeExpression:      clamp01(cf.Diversity*0.5 + expressionScore(cf.ExpressionLevel)*0.5),
		BehavioralConsistency:   cs.Overall,
		AttentionToDetail: clamp01(float64(cx.TotalStrokes)/maxTotalStrokes*0.6 +
			clamp01(cx.ArtisticIntensity/maxIntensity)*0.4),
	}
}

// expressionLevel buckets the average distinct colors per phase.
func expressionLevel(avgColors float64) string {
	switch {
	case avgColors > 3:
		return "High"
	case avgColors > 1.5:
		return "Moderate"
	default:
		return "Low"
	}
}

func expressionScore(level string) float64 {
	switch level {
	case "High":
		return 1.0
	case "Moderate":
		return 0.6
	default:
		return 0.3
	}
}

// colorDiversity is a normalized entropy over every color sample across
// phases; 0 for a single color, 1 when usage is spread evenly.
func colorDiversity(all []string) float64 {
	if len(all) <= 1 {
		return 0
	}
	counts := make(map[string]int, len(all))
	for _, c := range all {
		counts[c]++
	}
	if len(counts) <= 1 {
		return 0
	}
	total := float64(len(all))
	entropy := 0.0
	for _, n := range counts {
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(float64(len(counts)))
}

// consistencyOf is 1 minus the coefficient of variation, clamped to [0,1].
// A flat series is perfectly consistent.
func consistencyOf(series []float64) float64 {
	m := mean(series)
	if m == 0 {
		return 1
	}
	return clamp01(1 - math.Sqrt(variance(series))/m)
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	total := 0.0
	for _, x := range xs {
		total += (x - m) * (x - m)
	}
	return total / float64(len(xs))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
