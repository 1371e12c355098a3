package extensibility

import "github.com/comalice/ironloop/internal/core"

// HistoryRecordBehavior is a pure marker sibling: the output log already
// records every statement append-only (spec.md §4.9's addOutput), so this
// behavior has nothing to do beyond existing as a named slot in the Root
// composition that a future revision could use to filter or tag history
// entries per session (spec.md §4.7 lists it alongside the other
// "pure UI/output emitters").
type HistoryRecordBehavior struct {
	core.BaseBehavior
}

func NewHistoryRecordBehavior() *HistoryRecordBehavior { return &HistoryRecordBehavior{} }
