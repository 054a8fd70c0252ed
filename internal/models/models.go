package models

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&Company{},
		&Job{},
		&Document{},
		&CandidateApplication{},
		&FitAnalysis{},
		&AnalysisRun{},
	}
}
