package offering

import "yogaslot/internal/state"

const (
	opFetch  = "services/fetch"
	opCreate = "services/create"
	opUpdate = "services/update"
	opDelete = "services/delete"

	actionClearError = "services/clearError"
)

type State struct {
	Offerings []Offering
	IsLoading bool
	Error     string
}

func reduce(prev State, a state.Action) State {
	switch a.Type {
	case opFetch + "/pending", opCreate + "/pending", opUpdate + "/pending", opDelete + "/pending":
		prev.IsLoading = true
		prev.Error = ""
	case opFetch + "/rejected", opCreate + "/rejected", opUpdate + "/rejected", opDelete + "/rejected":
		prev.IsLoading = false
		prev.Error = a.Err.Error()
	case opFetch + "/fulfilled":
		prev.IsLoading = false
		prev.Offerings = state.Append(nil, a.Payload.([]Offering)...)
	case opCreate + "/fulfilled":
		prev.IsLoading = false
		prev.Offerings = state.Append(prev.Offerings, a.Payload.(Offering))
	case opUpdate + "/fulfilled":
		o := a.Payload.(Offering)
		prev.IsLoading = false
		prev.Offerings = state.Replace(prev.Offerings, func(x Offering) bool { return x.ID == o.ID }, o)
	case opDelete + "/fulfilled":
		id := a.Payload.(int64)
		prev.IsLoading = false
		prev.Offerings = state.Without(prev.Offerings, func(x Offering) bool { return x.ID == id })
	case actionClearError:
		prev.Error = ""
	}
	return prev
}
