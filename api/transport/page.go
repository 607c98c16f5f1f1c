package transport

import "github.com/fastygo/todo/domain"

// Page is the data every rendered view receives.
type Page struct {
	Title      string
	ActivePage string
	Username   string
	Flashes    []domain.Flash
}

// TaskListPage backs the home, active and completed views.
type TaskListPage struct {
	Page
	Tasks         []domain.Task
	CurrentFilter string
}
