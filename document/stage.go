package document

import "fmt"

// Stage is a step of the document decoding state machine. Stages advance one
// way; any failure moves the decoder to StageFailed.
type Stage uint8

const (
	StageUnopened          Stage = iota // nothing read
	StageHeaderRead                     // header parsed and layout validated
	StageRangesRead                     // range table parsed
	StageBuffersIndexed                 // names decoded, buffers indexed
	StageTablesBuilt                    // metadata, strings and entity tables decoded
	StageRelationsResolved              // every relation validated, document published
	StageFailed                         // terminal, carries the triggering error
)

func (s Stage) String() string {
	switch s {
	case StageUnopened:
		return "Unopened"
	case StageHeaderRead:
		return "HeaderRead"
	case StageRangesRead:
		return "RangesRead"
	case StageBuffersIndexed:
		return "BuffersIndexed"
	case StageTablesBuilt:
		return "TablesBuilt"
	case StageRelationsResolved:
		return "RelationsResolved"
	case StageFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// DecodeError reports the stage that could not be reached and the error that
// stopped it.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bfast: decode failed reaching %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
