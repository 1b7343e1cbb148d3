package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MindCanvas/internal/state"
)

func samplePayload() Payload {
	return Payload{Phases: []PhaseMetrics{
		{Phase: 1, TimeSpent: 60_000, StrokeCount: 10, ColorsUsed: []string{"#000000", "#ff0000"}, Coverage: 20},
		{Phase: 2, TimeSpent: 120_000, StrokeCount: 20, ColorsUsed: []string{"#ff0000", "#0000ff"}, Coverage: 40},
		{Phase: 3, TimeSpent: 60_000, StrokeCount: 30, ColorsUsed: []string{"#000000"}, Coverage: 60},
	}}
}

func TestPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Payload)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Payload) {}},
		{name: "no phases", mutate: func(p *Payload) { p.Phases = nil }, wantErr: true},
		{name: "too many phases", mutate: func(p *Payload) {
			p.Phases = append(p.Phases, p.Phases[0], p.Phases[0])
		}, wantErr: true},
		{name: "phase out of range", mutate: func(p *Payload) { p.Phases[0].Phase = 4 }, wantErr: true},
		{name: "negative time", mutate: func(p *Payload) { p.Phases[1].TimeSpent = -1 }, wantErr: true},
		{name: "negative strokes", mutate: func(p *Payload) { p.Phases[1].StrokeCount = -1 }, wantErr: true},
		{name: "missing colors", mutate: func(p *Payload) { p.Phases[2].ColorsUsed = nil }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePayload()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromSnapshots(t *testing.T) {
	snaps := []state.PhaseSnapshot{
		{
			Phase:          1,
			Name:           "House",
			Elapsed:        90 * time.Second,
			StrokeCount:    7,
			DistinctColors: []string{"#000000", "#ff0000"},
			Coverage:       14,
		},
	}
	p := FromSnapshots(snaps)
	require.Len(t, p.Phases, 1)
	assert.Equal(t, 1, p.Phases[0].Phase)
	assert.Equal(t, int64(90_000), p.Phases[0].TimeSpent)
	assert.Equal(t, 7, p.Phases[0].StrokeCount)
	assert.Equal(t, []string{"#000000", "#ff0000"}, p.Phases[0].ColorsUsed)
	assert.Equal(t, float64(14), p.Phases[0].Coverage)
	assert.NoError(t, p.Validate())
}

func TestExtractFeatures(t *testing.T) {
	f := ExtractFeatures(samplePayload())

	assert.InDelta(t, 4.0, f.Time.TotalMinutes, 1e-9)
	assert.InDelta(t, 4.0/3, f.Time.AverageMinutes, 1e-9)
	require.Len(t, f.Time.Priorities, 3)
	assert.Equal(t, "Personal Growth", f.Time.Priorities[0].Domain)
	assert.Equal(t, 1, f.Time.Priorities[0].Rank)

	assert.Equal(t, 60, f.Complexity.TotalStrokes)
	assert.InDelta(t, 10.0, f.Complexity.DetailProgression, 1e-9)
	assert.InDelta(t, 0.3, f.Complexity.Score, 1e-9)

	assert.Equal(t, 3, f.Color.TotalUnique)
	assert.Equal(t, []int{2, 2, 1}, f.Color.PerPhase)
	assert.Equal(t, "Moderate", f.Color.ExpressionLevel)
	assert.InDelta(t, 0.96, f.Color.Diversity, 0.01)

	// Composite scores always land in [0, 1].
	for _, score := range []float64{
		f.Composite.PsychologicalInvestment,
		f.Composite.CreativeExpression,
		f.Composite.BehavioralConsistency,
		f.Composite.AttentionToDetail,
	} {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
	assert.InDelta(t, 4.0/15*0.4+0.3*0.6, f.Composite.PsychologicalInvestment, 1e-9)
}

func TestColorDiversity(t *testing.T) {
	assert.Equal(t, 0.0, colorDiversity(nil))
	assert.Equal(t, 0.0, colorDiversity([]string{"#000000"}))
	assert.Equal(t, 0.0, colorDiversity([]string{"#000000", "#000000"}))
	// Two colors, even split: maximum entropy.
	assert.InDelta(t, 1.0, colorDiversity([]string{"a", "b", "a", "b"}), 1e-9)
}

func TestConsistencyOf(t *testing.T) {
	assert.Equal(t, 1.0, consistencyOf([]float64{5, 5, 5}))
	assert.Equal(t, 1.0, consistencyOf([]float64{0, 0, 0})) // zero mean: flat
	wild := consistencyOf([]float64{1, 100, 1})
	assert.Less(t, wild, 0.5)
}

func TestClusterPersonality(t *testing.T) {
	tests := []struct {
		name   string
		scores CompositeScores
		want   string
	}{
		{
			name:   "analytical",
			scores: CompositeScores{AttentionToDetail: 0.8, BehavioralConsistency: 0.7},
			want:   "Analytical",
		},
		{
			name:   "creative",
			scores: CompositeScores{CreativeExpression: 0.7, PsychologicalInvestment: 0.6},
			want:   "Creative",
		},
		{
			name:   "efficient",
			scores: CompositeScores{PsychologicalInvestment: 0.2, BehavioralConsistency: 0.6},
			want:   "Efficient",
		},
		{
			name:   "thoughtful fallback",
			scores: CompositeScores{PsychologicalInvestment: 0.5, BehavioralConsistency: 0.4},
			want:   "Thoughtful",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClusterPersonality(tt.scores)
			assert.Equal(t, tt.want, got.Type)
			assert.Greater(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 0.95)
		})
	}
}

func TestCorrelation(t *testing.T) {
	assert.InDelta(t, 1.0, correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, correlation([]float64{1, 2, 3}, []float64{6, 4, 2}), 1e-9)
	// Constant series would divide by zero; must come back as 0, not NaN.
	assert.Equal(t, 0.0, correlation([]float64{1, 1, 1}, []float64{2, 4, 6}))
}

func TestBuildReport(t *testing.T) {
	rep, err := BuildReport(samplePayload())
	require.NoError(t, err)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.NotEmpty(t, rep.Cluster.Type)
	assert.NotEmpty(t, rep.Cognitive.Style)
	assert.NotEmpty(t, rep.Assessment)
	require.Len(t, rep.Insights, 3)
	assert.Equal(t, "House", rep.Insights[0].Name)
	assert.Equal(t, "Tree", rep.Insights[1].Name)
	assert.Equal(t, "Person", rep.Insights[2].Name)
	for _, in := range rep.Insights {
		assert.NotEmpty(t, in.Text)
	}
	assert.InDelta(t, 1.33, rep.Summary.Time.Mean, 0.01)
}

func TestBuildReportRejectsInvalid(t *testing.T) {
	_, err := BuildReport(Payload{})
	require.ErrorIs(t, err, ErrInvalidPayload)
}
