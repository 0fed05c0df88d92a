package model

// User defines a forum member
type User struct {
	Id                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	PreferredLanguage string `json:"preferredLanguage"`
	JoinDate          string `json:"joinDate,omitempty"`
}

// LoginBody defines the body of the login route
type LoginBody struct {
	Username string `json:"username"`
}

// Login is the response of the login route
type Login struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// PreferencesBody defines the body of the preferences route
type PreferencesBody struct {
	PreferredLanguage string `json:"preferredLanguage"`
}
