package model

// LogEntry is a row of the audit log. Timestamp is assigned by the server
// when the entry is inserted and never changes afterwards.
type LogEntry struct {
	ID          int64     `json:"id" db:"id"`
	Action      string    `json:"action" db:"action"`
	Description *string   `json:"description" db:"description"`
	Timestamp   Timestamp `json:"timestamp" db:"timestamp"`
}

type FindLogEntry struct {
	ID     *int64
	Action *string
}

type LogEntryCreateRequest struct {
	Action      string  `json:"action"`
	Description *string `json:"description"`
}

type LogEntryUpdateRequest struct {
	Action      string  `json:"action"`
	Description *string `json:"description"`
}

func (r *LogEntryUpdateRequest) Apply(e *LogEntry) {
	e.Action = r.Action
	e.Description = r.Description
}

type LogEntryPatchRequest struct {
	Action      Optional[string] `json:"action"`
	Description Optional[string] `json:"description"`
}

func (r *LogEntryPatchRequest) IsEmpty() bool {
	return !r.Action.Set && !r.Description.Set
}

func (r *LogEntryPatchRequest) Apply(e *LogEntry) {
	if r.Action.Set {
		e.Action = r.Action.Value
	}
	if r.Description.Set {
		e.Description = r.Description.Ptr()
	}
}
