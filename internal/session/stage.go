package session

// Stage identifies where a session is in its lifecycle. A session begins in
// StageDifficulty (or StageLoading for standard tests, which carry a fixed
// difficulty) and ends in StageResult. A retake is a brand new session; no
// stage ever transitions backwards.
type Stage string

const (
	StageDifficulty Stage = "difficulty"
	StageLoading    Stage = "loading"
	StageGuidelines Stage = "guidelines"
	StageTest       Stage = "test"
	StageResult     Stage = "result"
)

func (s Stage) String() string {
	return string(s)
}

// Terminal reports whether the stage permits no further transitions.
func (s Stage) Terminal() bool {
	return s == StageResult
}
