package asset

import "fmt"

// Stage is the last step an ingestion reached.
type Stage int

const (
	StageRequested Stage = iota
	StageValidated
	StageDecoded
	StageUploaded
	StagePersisted
)

func (s Stage) String() string {
	switch s {
	case StageRequested:
		return "requested"
	case StageValidated:
		return "validated"
	case StageDecoded:
		return "decoded"
	case StageUploaded:
		return "uploaded"
	case StagePersisted:
		return "persisted"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// IngestError reports a failed ingestion and the stage it had reached.
// No asset row exists for a failed ingestion.
type IngestError struct {
	Stage Stage
	Err   error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest asset after %s: %v", e.Stage, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
