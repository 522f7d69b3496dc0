package report

import (
	"testing"

	"github.com/careerforge/assessment-engine/internal/models"
)

func result(text string, correct bool) models.QuestionResult {
	return models.QuestionResult{QuestionText: text, IsCorrect: correct}
}

func findStat(report *TopicReport, topic string) (TopicStat, bool) {
	for _, stat := range report.Breakdown {
		if stat.Topic == topic {
			return stat, true
		}
	}
	return TopicStat{}, false
}

func TestAnalyze_KeywordAttribution(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	report := analyzer.Analyze([]models.QuestionResult{
		result("What does a POINTER store?", true),
		result("How is heap memory reclaimed?", false),
		result("Write an SQL query joining two tables", true),
	})

	stat, ok := findStat(report, "Memory Management")
	if !ok {
		t.Fatal("expected Memory Management in breakdown")
	}
	if stat.Total != 2 || stat.Correct != 1 {
		t.Errorf("expected 1/2 for Memory Management, got %d/%d", stat.Correct, stat.Total)
	}

	stat, ok = findStat(report, "Databases")
	if !ok {
		t.Fatal("expected Databases in breakdown")
	}
	if stat.Total != 1 || stat.Correct != 1 {
		t.Errorf("expected 1/1 for Databases, got %d/%d", stat.Correct, stat.Total)
	}
}

func TestAnalyze_MultiTopicAttribution(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// Mentions both a data structure and an algorithm keyword; it counts
	// toward both topics.
	report := analyzer.Analyze([]models.QuestionResult{
		result("Implement binary search over a sorted array", true),
	})

	for _, topic := range []string{"Data Structures", "Algorithms"} {
		stat, ok := findStat(report, topic)
		if !ok {
			t.Fatalf("expected %s in breakdown", topic)
		}
		if stat.Total != 1 || stat.Correct != 1 {
			t.Errorf("expected 1/1 for %s, got %d/%d", topic, stat.Correct, stat.Total)
		}
	}
}

func TestAnalyze_ExplanationContributesKeywords(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	explanation := "A deadlock occurs when two processes wait on each other."
	report := analyzer.Analyze([]models.QuestionResult{
		{QuestionText: "Why did the program hang?", Explanation: &explanation, IsCorrect: false},
	})

	stat, ok := findStat(report, "Operating Systems")
	if !ok {
		t.Fatal("expected Operating Systems via explanation keywords")
	}
	if stat.Total != 1 {
		t.Errorf("expected 1 question, got %d", stat.Total)
	}
}

func TestAnalyze_FallbackTopic(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	report := analyzer.Analyze([]models.QuestionResult{
		result("Who painted the Mona Lisa?", true),
		result("In which year did the first moon landing happen?", false),
	})

	if len(report.Breakdown) != 1 {
		t.Fatalf("expected only the fallback bucket, got %d", len(report.Breakdown))
	}
	stat := report.Breakdown[0]
	if stat.Topic != FallbackTopic {
		t.Errorf("expected %q, got %q", FallbackTopic, stat.Topic)
	}
	if stat.Total != 2 || stat.Correct != 1 {
		t.Errorf("expected 1/2, got %d/%d", stat.Correct, stat.Total)
	}
}

func TestAnalyze_StrengthAndWeaknessThresholds(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// Databases: 3/4 = 75% -> strength (inclusive boundary).
	// Networking: 1/2 = 50% -> weakness (inclusive boundary).
	// Algorithms: 2/3 = 66.7% -> neither.
	report := analyzer.Analyze([]models.QuestionResult{
		result("sql question one", true),
		result("sql question two", true),
		result("sql question three", true),
		result("sql question four", false),
		result("tcp handshake steps", true),
		result("udp vs tcp guarantees", false),
		result("recursion base case", true),
		result("sorting stability", true),
		result("complexity of quicksort", false),
	})

	if len(report.Strengths) != 1 || report.Strengths[0] != "Databases (75%)" {
		t.Errorf("unexpected strengths: %v", report.Strengths)
	}
	if len(report.Weaknesses) != 1 || report.Weaknesses[0] != "Networking (Accuracy: 50%)" {
		t.Errorf("unexpected weaknesses: %v", report.Weaknesses)
	}

	if _, ok := findStat(report, "Algorithms"); !ok {
		t.Error("mid-band topic must still appear in the breakdown")
	}
}

func TestAnalyze_ListsTruncatedToFour(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	// Five distinct topics all at 100%; only the first four in table order
	// make the strengths list.
	report := analyzer.Analyze([]models.QuestionResult{
		result("reverse a linked list", true),
		result("recursion depth", true),
		result("pointer arithmetic", true),
		result("class inheritance rules", true),
		result("sql normalization forms", true),
	})

	if len(report.Strengths) != 4 {
		t.Fatalf("expected 4 strengths, got %d", len(report.Strengths))
	}
	expected := []string{
		"Data Structures (100%)",
		"Algorithms (100%)",
		"Memory Management (100%)",
		"Object-Oriented Programming (100%)",
	}
	for i, want := range expected {
		if report.Strengths[i] != want {
			t.Errorf("strength %d: expected %q, got %q", i, want, report.Strengths[i])
		}
	}

	// The breakdown is never truncated.
	if len(report.Breakdown) != 5 {
		t.Errorf("expected 5 breakdown entries, got %d", len(report.Breakdown))
	}
}

func TestAnalyze_FallbackProse(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	t.Run("high overall with empty lists", func(t *testing.T) {
		// 2/3 correct = 66.7% overall; the single topic sits between the
		// thresholds so both lists start empty.
		report := analyzer.Analyze([]models.QuestionResult{
			result("sql query one", true),
			result("sql query two", true),
			result("sql query three", false),
		})

		if len(report.Strengths) != 1 || report.Strengths[0] != "Consistent performance across all topics" {
			t.Errorf("unexpected strengths: %v", report.Strengths)
		}
		if len(report.Weaknesses) != 1 || report.Weaknesses[0] != "No significant weak areas identified" {
			t.Errorf("unexpected weaknesses: %v", report.Weaknesses)
		}
	})

	t.Run("low overall with empty strengths", func(t *testing.T) {
		// 0/2 correct: Databases is a weakness, strengths fall back to prose.
		report := analyzer.Analyze([]models.QuestionResult{
			result("sql query one", false),
			result("sql query two", false),
		})

		if len(report.Strengths) != 1 || report.Strengths[0] != "Keep practicing to build standout strengths" {
			t.Errorf("unexpected strengths: %v", report.Strengths)
		}
		if len(report.Weaknesses) != 1 || report.Weaknesses[0] != "Databases (Accuracy: 0%)" {
			t.Errorf("unexpected weaknesses: %v", report.Weaknesses)
		}
	})
}

func TestAnalyze_EmptyResults(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	report := analyzer.Analyze(nil)

	if len(report.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d", len(report.Breakdown))
	}
	// Zero questions reads as a low-scoring attempt.
	if len(report.Strengths) != 1 || len(report.Weaknesses) != 1 {
		t.Errorf("expected prose fallbacks, got %v / %v", report.Strengths, report.Weaknesses)
	}
}

func TestAnalyze_CustomTopicTable(t *testing.T) {
	analyzer := NewAnalyzer([]Topic{
		{Name: "Go Runtime", Keywords: []string{"goroutine", "channel"}},
	})

	report := analyzer.Analyze([]models.QuestionResult{
		result("When does a goroutine leak?", true),
		result("sql join types", true),
	})

	if _, ok := findStat(report, "Go Runtime"); !ok {
		t.Error("expected custom topic in breakdown")
	}
	// The default table is out of play, so the SQL question lands in the
	// fallback bucket.
	if _, ok := findStat(report, "Databases"); ok {
		t.Error("default topics must not apply with a custom table")
	}
	if _, ok := findStat(report, FallbackTopic); !ok {
		t.Error("expected fallback bucket for unmatched question")
	}
}
