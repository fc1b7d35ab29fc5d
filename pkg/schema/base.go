package schema

// ConsequenceCategory is the RCM consequence classification. Hidden failures
// only carry Safety-Env or Operational consequences, giving five values total.
type ConsequenceCategory string

const (
	ConsequenceHiddenSafetyEnv       ConsequenceCategory = "Hidden Safety-Env"
	ConsequenceHiddenOperational     ConsequenceCategory = "Hidden Operational"
	ConsequenceEvidentSafetyEnv      ConsequenceCategory = "Evident Safety-Env"
	ConsequenceEvidentOperational    ConsequenceCategory = "Evident Operational"
	ConsequenceEvidentNonOperational ConsequenceCategory = "Evident Non-Operational"
)

// Criticality represents the qualitative risk band of a failure mode.
type Criticality string

const (
	CriticalityHigh   Criticality = "High"
	CriticalityMedium Criticality = "Medium"
	CriticalityLow    Criticality = "Low"
)

// TaskType is the proposed maintenance response classification.
type TaskType string

const (
	TaskConditionMonitoring  TaskType = "Condition Monitoring"
	TaskScheduledRestoration TaskType = "Scheduled Restoration"
	TaskScheduledDiscard     TaskType = "Scheduled Discard"
	TaskFailureFinding       TaskType = "Failure Finding"
	TaskRunToFailure         TaskType = "Run to Failure"
	TaskRedesign             TaskType = "Redesign"
	TaskLubrication          TaskType = "Lubrication"
	TaskServicing            TaskType = "Servicing"
	TaskVisualInspection     TaskType = "Visual Inspection"
)

// Score bounds and criticality thresholds.
const (
	ScoreMin = 1
	ScoreMax = 10

	CriticalityHighThreshold   = 8
	CriticalityMediumThreshold = 5
)

// ValidConsequenceCategories lists every accepted consequence value.
var ValidConsequenceCategories = []ConsequenceCategory{
	ConsequenceHiddenSafetyEnv,
	ConsequenceHiddenOperational,
	ConsequenceEvidentSafetyEnv,
	ConsequenceEvidentOperational,
	ConsequenceEvidentNonOperational,
}

// ValidTaskTypes lists every accepted maintenance task type.
var ValidTaskTypes = []TaskType{
	TaskConditionMonitoring,
	TaskScheduledRestoration,
	TaskScheduledDiscard,
	TaskFailureFinding,
	TaskRunToFailure,
	TaskRedesign,
	TaskLubrication,
	TaskServicing,
	TaskVisualInspection,
}

// IsValidConsequenceCategory reports whether c is one of the five accepted values.
func IsValidConsequenceCategory(c ConsequenceCategory) bool {
	for _, v := range ValidConsequenceCategories {
		if v == c {
			return true
		}
	}
	return false
}

// IsValidCriticality reports whether c is High, Medium, or Low.
func IsValidCriticality(c Criticality) bool {
	return c == CriticalityHigh || c == CriticalityMedium || c == CriticalityLow
}

// IsValidTaskType reports whether t is one of the nine accepted values.
func IsValidTaskType(t TaskType) bool {
	for _, v := range ValidTaskTypes {
		if v == t {
			return true
		}
	}
	return false
}
