// internal/models/stage.go
package models

// StageStatus tags the result of one pipeline stage.
type StageStatus string

const (
	StageSuccess     StageStatus = "success"
	StageRecoverable StageStatus = "recoverable"
	StageFatal       StageStatus = "fatal"
)

// StageResult carries a stage value, a recoverable reason, or a fatal error.
// Only one of Value/Reason/Err is meaningful, as selected by Status.
type StageResult[T any] struct {
	Status StageStatus
	Value  T
	Reason string
	Err    error
}

func Success[T any](v T) StageResult[T] {
	return StageResult[T]{Status: StageSuccess, Value: v}
}

func Recoverable[T any](reason string) StageResult[T] {
	return StageResult[T]{Status: StageRecoverable, Reason: reason}
}

func Fatal[T any](err error) StageResult[T] {
	return StageResult[T]{Status: StageFatal, Err: err}
}

// FromCall lifts a (value, error) pair into a StageResult.
func FromCall[T any](v T, err error) StageResult[T] {
	if err != nil {
		return Fatal[T](err)
	}
	return Success(v)
}

func (r StageResult[T]) IsFatal() bool {
	return r.Status == StageFatal
}

func (r StageResult[T]) IsSuccess() bool {
	return r.Status == StageSuccess
}
