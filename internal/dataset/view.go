package dataset

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fmeca/pkg/schema"
)

// SearchField names the five text fields that support substring search.
type SearchField string

const (
	SearchComponent         SearchField = "component"
	SearchFunctionalFailure SearchField = "functionalFailure"
	SearchFailureMode       SearchField = "failureMode"
	SearchFailureEffect     SearchField = "failureEffect"
	SearchMaintenanceTask   SearchField = "maintenanceTask"
)

// MatrixCell identifies one cell of the risk matrix.
type MatrixCell struct {
	Severity   int
	Occurrence int
}

// FilterState holds the active read-view filters. All active filters are
// AND-composed.
type FilterState struct {
	MatrixCell  *MatrixCell
	IsolatedID  string
	FieldSearch map[SearchField]string
}

// ToggleMatrixCell applies the cell filter, or clears it when the same cell
// is already active.
func (f FilterState) ToggleMatrixCell(severity, occurrence int) FilterState {
	if f.MatrixCell != nil && f.MatrixCell.Severity == severity && f.MatrixCell.Occurrence == occurrence {
		f.MatrixCell = nil
		return f
	}
	f.MatrixCell = &MatrixCell{Severity: severity, Occurrence: occurrence}
	return f
}

// ToggleIsolation isolates a single record, or clears the isolation when the
// same id is already isolated.
func (f FilterState) ToggleIsolation(id string) FilterState {
	if f.IsolatedID == id {
		f.IsolatedID = ""
		return f
	}
	f.IsolatedID = id
	return f
}

// SortKey names a sortable record field. SortByStatus is the synthetic
// isNew/rpn grouping key.
type SortKey string

const (
	SortByComponent         SortKey = "component"
	SortByFunction          SortKey = "function"
	SortByFunctionalFailure SortKey = "functionalFailure"
	SortByFailureMode       SortKey = "failureMode"
	SortByFailureEffect     SortKey = "failureEffect"
	SortByConsequence       SortKey = "consequenceCategory"
	SortByISO14224          SortKey = "iso14224Code"
	SortByCriticality       SortKey = "criticality"
	SortBySeverity          SortKey = "severity"
	SortByOccurrence        SortKey = "occurrence"
	SortByDetection         SortKey = "detection"
	SortByRPN               SortKey = "rpn"
	SortByMaintenanceTask   SortKey = "maintenanceTask"
	SortByInterval          SortKey = "interval"
	SortByTaskType          SortKey = "taskType"
	SortByStatus            SortKey = "status"
)

// SortState holds the active ordering.
type SortState struct {
	Key        SortKey
	Descending bool
}

// Project derives the filtered, ordered read view. Pure: the input dataset is
// not modified and the result shares no memory with it.
func Project(records []schema.Record, filter FilterState, sortState SortState) []schema.Record {
	view := make([]schema.Record, 0, len(records))
	for _, r := range records {
		if matches(r, filter) {
			view = append(view, r.Clone())
		}
	}

	if sortState.Key != "" {
		sortView(view, sortState)
	}
	return view
}

func matches(r schema.Record, f FilterState) bool {
	if f.MatrixCell != nil {
		if r.Severity != f.MatrixCell.Severity || r.Occurrence != f.MatrixCell.Occurrence {
			return false
		}
	}
	if f.IsolatedID != "" && r.ID != f.IsolatedID {
		return false
	}
	for field, term := range f.FieldSearch {
		if term == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(searchValue(r, field)), strings.ToLower(term)) {
			return false
		}
	}
	return true
}

func searchValue(r schema.Record, field SearchField) string {
	switch field {
	case SearchComponent:
		return r.Component
	case SearchFunctionalFailure:
		return r.FunctionalFailure
	case SearchFailureMode:
		return r.FailureMode
	case SearchFailureEffect:
		return r.FailureEffect
	case SearchMaintenanceTask:
		return r.MaintenanceTask
	default:
		return ""
	}
}

// sortView orders the view in place. A record missing its sort key always
// sorts after one with a present value, regardless of direction.
func sortView(view []schema.Record, s SortState) {
	coll := collate.New(language.Und, collate.IgnoreCase)

	sort.SliceStable(view, func(i, j int) bool {
		cmp, iPresent, jPresent := compareByKey(coll, view[i], view[j], s.Key)
		if iPresent != jPresent {
			return iPresent
		}
		if s.Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
}

// compareByKey compares two records on the sort key, reporting each side's
// key presence. Strings compare via locale-aware collation, numbers
// numerically.
func compareByKey(coll *collate.Collator, a, b schema.Record, key SortKey) (cmp int, aPresent, bPresent bool) {
	if av, bv, numeric := numericKey(a, b, key); numeric {
		return compareInt(av, bv), av != 0, bv != 0
	}

	as, bs := stringKey(a, key), stringKey(b, key)
	return coll.CompareString(as, bs), as != "", bs != ""
}

func numericKey(a, b schema.Record, key SortKey) (av, bv int, numeric bool) {
	switch key {
	case SortBySeverity:
		return a.Severity, b.Severity, true
	case SortByOccurrence:
		return a.Occurrence, b.Occurrence, true
	case SortByDetection:
		return a.Detection, b.Detection, true
	case SortByRPN:
		return a.RPN, b.RPN, true
	case SortByStatus:
		return statusKey(a), statusKey(b), true
	default:
		return 0, 0, false
	}
}

func stringKey(r schema.Record, key SortKey) string {
	switch key {
	case SortByComponent:
		return r.Component
	case SortByFunction:
		return r.Function
	case SortByFunctionalFailure:
		return r.FunctionalFailure
	case SortByFailureMode:
		return r.FailureMode
	case SortByFailureEffect:
		return r.FailureEffect
	case SortByConsequence:
		return string(r.ConsequenceCategory)
	case SortByISO14224:
		return r.ISO14224Code
	case SortByCriticality:
		return string(r.Criticality)
	case SortByMaintenanceTask:
		return r.MaintenanceTask
	case SortByInterval:
		return r.Interval
	case SortByTaskType:
		return string(r.TaskType)
	default:
		return ""
	}
}

// statusKey groups newly merged records first, highest risk first within each
// group, when sorted descending.
func statusKey(r schema.Record) int {
	v := r.RPN
	if r.IsNew {
		v += 1000
	}
	return v
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
