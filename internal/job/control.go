package job

// ControlState bundles the shell's process-wide job-control bookkeeping: the
// current foreground process and the monotonic job-id counter. A single
// instance lives for the whole session and is passed explicitly to every
// component; tests construct fresh instances.
type ControlState struct {
	ForegroundPID   int    // pid holding the terminal on the shell's behalf, 0 = none
	ForegroundJobID int    // job id of the foreground process, 0 = none
	ForegroundName  string // display name of the foreground command

	nextID int
}

// NewControlState returns control state for a fresh session. Job ids start
// at 1 and are never reused.
func NewControlState() *ControlState {
	return &ControlState{nextID: 1}
}

// SetForeground records pid as the current foreground process. jobID is 0
// unless the process was resumed from the job table by fg.
func (c *ControlState) SetForeground(pid, jobID int, name string) {
	c.ForegroundPID = pid
	c.ForegroundJobID = jobID
	c.ForegroundName = name
}

// ClearForeground records that the shell no longer has a foreground child.
func (c *ControlState) ClearForeground() {
	c.ForegroundPID = 0
	c.ForegroundJobID = 0
	c.ForegroundName = ""
}

// Admit assigns the next job id and inserts the job into t. The counter
// advances only when the insert succeeds, so a full table does not burn ids.
func (c *ControlState) Admit(t *Table, pid int, state State, name string) (int, error) {
	id := c.nextID
	if err := t.Add(id, pid, state, name); err != nil {
		return 0, err
	}
	c.nextID++
	return id, nil
}
