package transport

// RegisterForm is the registration form payload.
type RegisterForm struct {
	Username string
	Password string
	Email    string
}

// LoginForm is the login form payload.
type LoginForm struct {
	Username string
	Password string
}

// TaskForm is the new-task form payload. Only Title is required.
type TaskForm struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
}
