package user

// User represents an account row in the `users` table. Role is either
// "user" or "admin"; banned users keep their account but can no longer
// sign in. The cart and favorite columns live on the same row and are
// managed by the cart and favorite packages.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Banned    bool   `json:"banned"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
