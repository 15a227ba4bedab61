package seo

import (
	"fmt"
	"testing"

	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
)

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	return New(registry.Default())
}

func TestScore_CuratedFiveTagSet(t *testing.T) {
	s := newScorer(t)

	// keyword 10 + color 8 + occasion 6 + sweet spot 10 + diversity 8 (5
	// families, capped) = 42
	got := s.Score([]string{"navy", "wedding", "slim", "wool", "suit"})
	if got != 42 {
		t.Errorf("Score = %d, want 42", got)
	}
}

func TestScore_EmptySet(t *testing.T) {
	if got := newScorer(t).Score(nil); got != 0 {
		t.Errorf("Score(nil) = %d, want 0", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	s := newScorer(t)

	lists := [][]string{
		nil,
		{"navy"},
		{"navy", "wedding", "slim", "wool", "suit", "striped", "summer",
			"wedding guest", "groomsmen", "designer", "luxury", "premium",
			"tailored", "custom", "professional"},
		manyTags(40),
	}
	for _, tags := range lists {
		got := s.Score(tags)
		if got < 0 || got > 100 {
			t.Errorf("Score(%d tags) = %d, out of [0,100]", len(tags), got)
		}
	}
}

func TestScore_BloatPenalty(t *testing.T) {
	s := newScorer(t)

	// 25 generic tags: no keyword/color/occasion/diversity points, count
	// outside both count windows, minus 2 per tag over 20.
	if got := s.Score(manyTags(25)); got != 0 {
		t.Errorf("Score(25 generic) = %d, want 0", got)
	}
	// At 22 tags the penalty (-4) still cannot go below the clamp floor.
	if got := s.Score(manyTags(22)); got != 0 {
		t.Errorf("Score(22 generic) = %d, want 0", got)
	}
}

func TestScore_SweetSpotWindows(t *testing.T) {
	s := newScorer(t)

	// Generic tags only: the count bonus is the whole score.
	if got := s.Score(manyTags(5)); got != 10 {
		t.Errorf("Score(5 generic) = %d, want 10", got)
	}
	if got := s.Score(manyTags(4)); got != 5 {
		t.Errorf("Score(4 generic) = %d, want 5", got)
	}
	if got := s.Score(manyTags(16)); got != 5 {
		t.Errorf("Score(16 generic) = %d, want 5", got)
	}
	if got := s.Score(manyTags(2)); got != 0 {
		t.Errorf("Score(2 generic) = %d, want 0", got)
	}
}

func TestScore_ColorCoverageMonotonic(t *testing.T) {
	s := newScorer(t)

	base := []string{"wedding", "slim", "wool"}
	colors := []string{"navy", "charcoal", "black"}

	prev := s.Score(base)
	for i := 1; i <= 3; i++ {
		tags := append(append([]string{}, base...), colors[:i]...)
		got := s.Score(tags)
		if got < prev {
			t.Errorf("score decreased from %d to %d after adding color %q", prev, got, colors[i-1])
		}
		prev = got
	}
}

func TestScore_ColorCapAt24(t *testing.T) {
	s := newScorer(t)

	three := s.Score([]string{"navy", "charcoal", "black"})
	four := s.Score([]string{"navy", "charcoal", "black", "white"})
	// The fourth color adds no coverage points and the count bonus is
	// unchanged at 4 tags, so the score must not move.
	if four != three {
		t.Errorf("4th color changed score from %d to %d past the cap", three, four)
	}
}

func TestWithKeywords(t *testing.T) {
	s := New(registry.Default()).WithKeywords([]string{"bespoke"})

	with := s.Score([]string{"bespoke", "x1", "x2"})
	without := s.Score([]string{"y0", "x1", "x2"})
	if with-without != keywordPoints {
		t.Errorf("custom keyword delta = %d, want %d", with-without, keywordPoints)
	}
}

func manyTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = fmt.Sprintf("generic-%d", i)
	}
	return tags
}
