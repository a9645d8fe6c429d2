package course

import "yogaslot/internal/state"

const (
	opFetch  = "courses/fetch"
	opSearch = "courses/search"
	opCreate = "courses/create"
	opUpdate = "courses/update"
	opDelete = "courses/delete"

	actionSort       = "courses/sort"
	actionClearError = "courses/clearError"
)

type State struct {
	Courses   []Course
	SortedBy  SortKey
	IsLoading bool
	Error     string
}

func reduce(prev State, a state.Action) State {
	switch a.Type {
	case opFetch + "/pending", opSearch + "/pending", opCreate + "/pending", opUpdate + "/pending", opDelete + "/pending":
		prev.IsLoading = true
		prev.Error = ""
	case opFetch + "/rejected", opSearch + "/rejected", opCreate + "/rejected", opUpdate + "/rejected", opDelete + "/rejected":
		prev.IsLoading = false
		prev.Error = a.Err.Error()

	case opFetch + "/fulfilled", opSearch + "/fulfilled":
		prev.IsLoading = false
		prev.Courses = Sorted(a.Payload.([]Course), SortByName)
		prev.SortedBy = SortByName
	case opCreate + "/fulfilled":
		prev.IsLoading = false
		prev.Courses = Sorted(state.Append(prev.Courses, a.Payload.(Course)), SortByName)
		prev.SortedBy = SortByName
	case opUpdate + "/fulfilled":
		c := a.Payload.(Course)
		prev.IsLoading = false
		prev.Courses = Sorted(state.Replace(prev.Courses, func(x Course) bool { return x.ID == c.ID }, c), SortByName)
		prev.SortedBy = SortByName
	case opDelete + "/fulfilled":
		id := a.Payload.(int64)
		prev.IsLoading = false
		prev.Courses = state.Without(prev.Courses, func(x Course) bool { return x.ID == id })

	case actionSort:
		key := a.Payload.(SortKey)
		prev.Courses = Sorted(prev.Courses, key)
		prev.SortedBy = key
	case actionClearError:
		prev.Error = ""
	}
	return prev
}
