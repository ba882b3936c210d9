package state

// #region apply-reading
// ApplyReading is the only state transition. It returns a new state whose
// active reading is record and whose history is record followed by the prior
// history, truncated to HistoryLimit. current is never modified and the
// result shares no slice storage with it.
func ApplyReading(current ApplicationState, record ReadingRecord) ApplicationState {
	kept := len(current.History)
	if kept > HistoryLimit-1 {
		kept = HistoryLimit - 1
	}

	history := make([]ReadingRecord, 0, kept+1)
	history = append(history, record)
	history = append(history, current.History[:kept]...)

	active := history[0]
	return ApplicationState{
		History: history,
		Active:  &active,
	}
}

// #endregion apply-reading
