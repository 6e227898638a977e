package user

import "time"

const CollectionName = "users"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // bcrypt hash
	Dob       string    `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the public view of a user.
type Profile struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Dob                string `json:"dob"`
	CreatedAtHumanised string `json:"member_since,omitempty"`
}

func (u User) Profile() Profile {
	p := Profile{ID: u.ID, Username: u.Username, Email: u.Email, Dob: u.Dob}
	if !u.CreatedAt.IsZero() {
		p.CreatedAtHumanised = humanizeTime(u.CreatedAt)
	}
	return p
}
