package domain

type User struct {
	Name       string
	Email      string
	DocumentID string
}

type Session struct {
	User *User
}

func (s Session) LoggedIn() bool {
	return s.User != nil
}
