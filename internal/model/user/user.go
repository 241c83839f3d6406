package user

import "time"

// User is a stored account. PasswordHash is a bcrypt digest; the plaintext
// password is never persisted anywhere.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Public is the view of a user returned to clients.
type Public struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Public strips credential material from the record.
func (u User) Public() Public {
	return Public{ID: u.ID, Email: u.Email, Username: u.Username}
}
