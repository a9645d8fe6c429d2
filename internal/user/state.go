package user

import "yogaslot/internal/state"

const (
	opFetch  = "users/fetch"
	opCreate = "users/create"
	opUpdate = "users/update"
	opDelete = "users/delete"
)

// State is the admin console's view of the user collection.
type State struct {
	Users     []User
	Loaded    bool
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
		prev.Loaded = true
		prev.Users = state.Append(nil, a.Payload.([]User)...)
	case opCreate + "/fulfilled":
		prev.IsLoading = false
		prev.Users = state.Append(prev.Users, a.Payload.(User))
	case opUpdate + "/fulfilled":
		u := a.Payload.(User)
		prev.IsLoading = false
		prev.Users = state.Replace(prev.Users, func(x User) bool { return x.ID == u.ID }, u)
	case opDelete + "/fulfilled":
		id := a.Payload.(int64)
		prev.IsLoading = false
		prev.Users = state.Without(prev.Users, func(x User) bool { return x.ID == id })
	}
	return prev
}
