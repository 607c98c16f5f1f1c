package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
)

func TestRenderTaskList(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data := transport.TaskListPage{
		Page: transport.Page{
			Title:      "My Tasks",
			ActivePage: "home",
			Username:   "alice",
			Flashes:    []domain.Flash{{Level: domain.FlashError, Message: "Title is required!"}},
		},
		Tasks: []domain.Task{
			{ID: 3, Title: "<script>x</script>", Priority: "high"},
			{ID: 2, Title: "Buy milk", Priority: "low", Completed: true},
		},
		CurrentFilter: "low",
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, PageIndex, data); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Buy milk",
		`action="/complete/2"`,
		`action="/delete/3"`,
		"alert-danger",
		"Title is required!",
		`href="/filter/low" class="active"`,
		"Mark incomplete",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "<script>x</script>") {
		t.Error("task titles must be escaped")
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestRenderAllPages(t *testing.T) {
	r := newRenderer(t)
	for _, page := range pages {
		var data interface{} = transport.Page{Title: page}
		if page == PageIndex || page == PageTasks {
			data = transport.TaskListPage{Page: transport.Page{Title: page}}
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, page, data); err != nil {
			t.Errorf("Render(%s) error = %v", page, err)
		}
	}
}

func TestRenderUnknownPage(t *testing.T) {
	var buf bytes.Buffer
	if err := newRenderer(t).Render(&buf, "nope", nil); err == nil {
		t.Error("expected error for unknown page")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on failure")
	}
}
