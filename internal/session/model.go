package session

import "yogaslot/internal/user"

const (
	MsgLoginSuccess    = "Login successful!"
	MsgRegisterSuccess = "Registration successful!"
	MsgSessionExpired  = "Your session has expired, please log in again"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Phone           string `json:"phone" binding:"required,phone"`
}

type ProfileRequest struct {
	FullName string `json:"fullName" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

// Record is what survives a restart of the browser session.
type Record struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

type State struct {
	User           *user.User
	Token          string
	IsLoggedIn     bool
	IsLoading      bool
	Error          string
	SuccessMessage string
}

// View is the JSON shape of State handed to the browser.
type View struct {
	User           *user.Profile `json:"user"`
	IsLoggedIn     bool          `json:"isLoggedIn"`
	Error          string        `json:"error,omitempty"`
	SuccessMessage string        `json:"successMessage,omitempty"`
}

func (s State) View() View {
	v := View{IsLoggedIn: s.IsLoggedIn, Error: s.Error, SuccessMessage: s.SuccessMessage}
	if s.User != nil {
		p := s.User.Profile()
		v.User = &p
	}
	return v
}
