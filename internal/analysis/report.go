package analysis

import (
	"fmt"
	"strings"
	"time"
)

// PhaseInsight is the canned interpretation text for one phase.
type PhaseInsight struct {
	Phase  int    `json:"phase"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Text   string `json:"text"`
}

// Report is the complete analysis handed back to the drawing client.
type Report struct {
	GeneratedAt time.Time          `json:"timestamp"`
	Features    Features           `json:"feature_analysis"`
	Cluster     PersonalityCluster `json:"personality_cluster"`
	Cognitive   CognitiveStyle     `json:"cognitive_style"`
	Assessment  string             `json:"overall_assessment"`
	Insights    []PhaseInsight     `json:"behavioral_insights"`
	Summary     StatisticalSummary `json:"statistical_summary"`
}

var phaseNames = map[int]string{1: "House", 2: "Tree", 3: "Person"}

var phaseDomains = map[int]string{
	1: "Security & Family",
	2: "Growth & Stability",
	3: "Self-Image & Relations",
}

// BuildReport validates the payload and assembles the full report.
func BuildReport(p Payload) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	features := ExtractFeatures(p)
	cluster := ClusterPersonality(features.Composite)
	cognitive := AssessCognitiveStyle(features.Composite)

	return &Report{
		GeneratedAt: time.Now().UTC(),
		Features:    features,
		Cluster:     cluster,
		Cognitive:   cognitive,
		Assessment:  overallAssessment(features.Composite, cluster),
		Insights:    phaseInsights(p),
		Summary:     Summarize(p),
	}, nil
}

func phaseInsights(p Payload) []PhaseInsight {
	insights := make([]PhaseInsight, 0, len(p.Phases))
	for _, ph := range p.Phases {
		insights = append(insights, PhaseInsight{
			Phase:  ph.Phase,
			Name:   phaseNames[ph.Phase],
			Domain: phaseDomains[ph.Phase],
			Text:   insightText(ph),
		})
	}
	return insights
}

// insightText produces the per-phase interpretation from the three simple
// heuristics: time invested, stroke density, and color variety.
func insightText(ph PhaseMetrics) string {
	var parts []string

	seconds := float64(ph.TimeSpent) / 1000
	switch {
	case seconds < 30:
		parts = append(parts, "You worked quickly and decisively here")
	case seconds > 180:
		parts = append(parts, "You invested substantial time in this drawing, suggesting careful reflection")
	default:
		parts = append(parts, "You kept a steady, unhurried pace")
	}

	switch {
	case ph.StrokeCount > 40:
		parts = append(parts, "the drawing is rich in detail")
	case ph.StrokeCount < 5:
		parts = append(parts, "the drawing is sparse and minimal")
	default:
		parts = append(parts, "the level of detail is moderate")
	}

	switch {
	case len(ph.ColorsUsed) > 2:
		parts = append(parts, "and the varied palette points to open emotional expression.")
	case len(ph.ColorsUsed) == 2:
		parts = append(parts, "and the restrained palette suggests focused expression.")
	default:
		parts = append(parts, "and the single color suggests a reserved, controlled approach.")
	}

	return strings.Join(parts, ", ")
}

func overallAssessment(c CompositeScores, cluster PersonalityCluster) string {
	dominant := "behavioral consistency"
	best := c.BehavioralConsistency
	if c.PsychologicalInvestment > best {
		dominant, best = "psychological investment", c.PsychologicalInvestment
	}
	if c.CreativeExpression > best {
		dominant, best = "creative expression", c.CreativeExpression
	}
	if c.AttentionToDetail > best {
		dominant, best = "attention to detail", c.AttentionToDetail
	}
	return fmt.Sprintf("Profile leans %s (%s); the strongest signal is %s at %.2f.",
		cluster.Type, strings.ToLower(cluster.Description), dominant, round2(best))
}
