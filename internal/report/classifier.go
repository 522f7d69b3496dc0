package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/careerforge/assessment-engine/internal/models"
)

const (
	strengthThreshold = 75.0
	weaknessThreshold = 50.0
	maxListEntries    = 4

	// Overall percentage above which the fallback prose reads as praise
	// rather than encouragement.
	highOverallThreshold = 60.0
)

// TopicStat is the per-topic tally derived from a scored result.
type TopicStat struct {
	Topic    string  `json:"topic"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// TopicReport is the strengths/weaknesses summary shown with a result. It is
// derived on demand and never persisted.
type TopicReport struct {
	Breakdown  []TopicStat `json:"breakdown"`
	Strengths  []string    `json:"strengths"`
	Weaknesses []string    `json:"weaknesses"`
}

// Analyzer buckets question results into named skill topics by keyword
// matching. It is a heuristic text classifier, deliberately stateless and
// independent of any server-side topic tags.
type Analyzer struct {
	topics []Topic
}

// NewAnalyzer creates an analyzer over the given topic table. A nil or empty
// table falls back to DefaultTopics.
func NewAnalyzer(topics []Topic) *Analyzer {
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	return &Analyzer{topics: topics}
}

// Analyze classifies every question result and derives the topic report.
//
// A question counts toward every topic whose keyword list matches its text or
// explanation; a question matching nothing is attributed solely to the
// fallback topic. Topics at or above 75% accuracy are strengths, at or below
// 50% weaknesses, and anything strictly between is reported in neither list.
// Both lists keep table order and are cut to four entries.
func (a *Analyzer) Analyze(results []models.QuestionResult) *TopicReport {
	correct := make([]int, len(a.topics))
	total := make([]int, len(a.topics))
	fallbackCorrect, fallbackTotal := 0, 0

	overallCorrect := 0
	for _, result := range results {
		if result.IsCorrect {
			overallCorrect++
		}

		haystack := strings.ToLower(result.QuestionText)
		if result.Explanation != nil {
			haystack += " " + strings.ToLower(*result.Explanation)
		}

		matched := false
		for i, topic := range a.topics {
			if !matchesTopic(haystack, topic) {
				continue
			}
			matched = true
			total[i]++
			if result.IsCorrect {
				correct[i]++
			}
		}

		if !matched {
			fallbackTotal++
			if result.IsCorrect {
				fallbackCorrect++
			}
		}
	}

	report := &TopicReport{
		Breakdown:  make([]TopicStat, 0, len(a.topics)+1),
		Strengths:  make([]string, 0, maxListEntries),
		Weaknesses: make([]string, 0, maxListEntries),
	}

	appendStat := func(name string, c, t int) {
		accuracy := float64(c) / float64(t) * 100
		report.Breakdown = append(report.Breakdown, TopicStat{
			Topic:    name,
			Correct:  c,
			Total:    t,
			Accuracy: accuracy,
		})

		rounded := int(math.Round(accuracy))
		switch {
		case accuracy >= strengthThreshold:
			if len(report.Strengths) < maxListEntries {
				report.Strengths = append(report.Strengths, fmt.Sprintf("%s (%d%%)", name, rounded))
			}
		case accuracy <= weaknessThreshold:
			if len(report.Weaknesses) < maxListEntries {
				report.Weaknesses = append(report.Weaknesses, fmt.Sprintf("%s (Accuracy: %d%%)", name, rounded))
			}
		}
	}

	for i, topic := range a.topics {
		if total[i] == 0 {
			continue
		}
		appendStat(topic.Name, correct[i], total[i])
	}
	if fallbackTotal > 0 {
		appendStat(FallbackTopic, fallbackCorrect, fallbackTotal)
	}

	overall := 0.0
	if len(results) > 0 {
		overall = float64(overallCorrect) / float64(len(results)) * 100
	}
	a.fillFallbackProse(report, overall)

	return report
}

// fillFallbackProse supplies a single prose entry for any empty list so the
// report always reads sensibly, keyed to how the attempt went overall.
func (a *Analyzer) fillFallbackProse(report *TopicReport, overall float64) {
	if len(report.Strengths) == 0 {
		if overall >= highOverallThreshold {
			report.Strengths = append(report.Strengths, "Consistent performance across all topics")
		} else {
			report.Strengths = append(report.Strengths, "Keep practicing to build standout strengths")
		}
	}
	if len(report.Weaknesses) == 0 {
		if overall >= highOverallThreshold {
			report.Weaknesses = append(report.Weaknesses, "No significant weak areas identified")
		} else {
			report.Weaknesses = append(report.Weaknesses, "Accuracy needs improvement across most topics")
		}
	}
}

func matchesTopic(haystack string, topic Topic) bool {
	for _, keyword := range topic.Keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
