package models

// Session is the signed-in state persisted between launches.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

// Identity is the public part of a Session.
type Identity struct {
	UserID string
	Email  string
}

func (s Session) Identity() Identity {
	return Identity{UserID: s.UserID, Email: s.Email}
}
