package session

import (
	"yogaslot/internal/state"
	"yogaslot/internal/user"
)

const (
	opLogin    = "session/login"
	opRegister = "session/register"
	opLoad     = "session/load"
	opProfile  = "session/profile"

	actionLogout       = "session/logout"
	actionForceLogout  = "session/forceLogout"
	actionClearError   = "session/clearError"
	actionClearSuccess = "session/clearSuccessMessage"
)

func reduce(prev State, a state.Action) State {
	switch a.Type {
	case opLogin + "/pending", opRegister + "/pending", opProfile + "/pending":
		prev.IsLoading = true
		prev.Error = ""
	case opLoad + "/pending":
		prev.IsLoading = true

	case opLogin + "/fulfilled":
		prev = loggedIn(prev, a.Payload.(Record))
		prev.SuccessMessage = MsgLoginSuccess
	case opRegister + "/fulfilled":
		prev = loggedIn(prev, a.Payload.(Record))
		prev.SuccessMessage = MsgRegisterSuccess
	case opLoad + "/fulfilled":
		prev = loggedIn(prev, a.Payload.(Record))
		prev.SuccessMessage = ""
	case opProfile + "/fulfilled":
		u := a.Payload.(user.User)
		prev.IsLoading = false
		prev.User = &u

	// A failed login or registration reports the error but leaves whoever is
	// logged in untouched.
	case opLogin + "/rejected", opRegister + "/rejected", opProfile + "/rejected":
		prev.IsLoading = false
		prev.Error = a.Err.Error()
	case opLoad + "/rejected":
		prev.IsLoading = false
		prev.User = nil
		prev.Token = ""
		prev.IsLoggedIn = false

	case actionLogout:
		return State{}
	case actionForceLogout:
		return State{Error: MsgSessionExpired}
	case actionClearError:
		prev.Error = ""
	case actionClearSuccess:
		prev.SuccessMessage = ""
	}
	return prev
}

func loggedIn(prev State, rec Record) State {
	u := rec.User
	prev.IsLoading = false
	prev.User = &u
	prev.Token = rec.Token
	prev.IsLoggedIn = true
	prev.Error = ""
	return prev
}
