// Package web serves the event editor pages.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"eventeditor/internal/domain"
	"eventeditor/internal/form"
	"eventeditor/internal/notify"
	"eventeditor/internal/router"
	"eventeditor/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"loading", "list", "detail", "notfound", "confirm", "form"}

// Handler renders the editor views over a services.Editor.
type Handler struct {
	editor   *services.Editor
	logger   *slog.Logger
	pages    map[string]*template.Template
	firstDay time.Weekday
}

// NewHandler parses the page templates. firstDay is the first column of the date picker.
func NewHandler(editor *services.Editor, logger *slog.Logger, firstDay time.Weekday) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &Handler{editor: editor, logger: logger, pages: pages, firstDay: firstDay}, nil
}

// Routes returns the editor routes. Every request gets a notice inbox.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, router.ListPath, http.StatusFound)
	})
	mux.HandleFunc("GET /", h.View)
	mux.HandleFunc("POST /events/new", h.CreateEvent)
	mux.HandleFunc("GET /events/{eventID}/delete", h.ConfirmDelete)
	mux.HandleFunc("POST /events/{eventID}/delete", h.DeleteEvent)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return withInbox(mux)
}

func withInbox(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := notify.WithInbox(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type page struct {
	Title   string
	Refresh int
	Notices []domain.Notice
	Data    any
}

type listData struct {
	Events []domain.Event
	Failed bool
}

type detailData struct {
	Event  domain.Event
	Prompt string
}

type formData struct {
	Draft    domain.Draft
	DateText string
	Errors   []string
	Picker   *form.MonthPicker
}

// View resolves the location and renders the list, detail or creation form.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	notices := takeFlash(w, r)
	events := h.editor.Events()
	if events.Loading() {
		h.render(w, r, http.StatusOK, "loading", page{Title: "Loading", Refresh: 1, Notices: notices})
		return
	}

	route := router.Resolve(r.URL.Path)
	switch route.View {
	case router.Create:
		f := form.New()
		picker := form.NewMonthPicker(h.firstDay)
		release := f.Mount(picker)
		defer release()
		h.renderForm(w, r, http.StatusOK, f, picker, notices)
	case router.Detail:
		ev, ok := events.Find(route.ID)
		if route.ID == 0 || !ok {
			h.render(w, r, http.StatusNotFound, "notfound", page{Title: "Event not found", Notices: notices})
			return
		}
		h.render(w, r, http.StatusOK, "detail", page{Title: ev.Title, Notices: notices, Data: detailData{Event: ev}})
	default:
		list := events.Snapshot()
		sort.SliceStable(list, func(i, j int) bool { return list[i].EventDate > list[j].EventDate })
		h.render(w, r, http.StatusOK, "list", page{
			Title:   "Events",
			Notices: notices,
			Data:    listData{Events: list, Failed: events.Err() != nil},
		})
	}
}

// CreateEvent handles the creation form: picking a date, switching the
// picker month and saving.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if h.stillLoading(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	f := form.New()
	picker := form.NewMonthPicker(h.firstDay)
	release := f.Mount(picker)
	defer release()

	f.ApplyValues(r.PostForm)
	picker.Preselect(f.Draft().EventDate)

	switch r.FormValue("action") {
	case "pick":
		if err := picker.SelectValue(r.FormValue("pick")); err != nil {
			h.logger.DebugContext(r.Context(), "ignoring picked date", "err", err)
		}
		h.renderForm(w, r, http.StatusOK, f, picker, nil)
		return
	case "month":
		if err := picker.Show(r.FormValue("month")); err != nil {
			h.logger.DebugContext(r.Context(), "ignoring picker month", "err", err)
		}
		h.renderForm(w, r, http.StatusOK, f, picker, nil)
		return
	}

	var target router.Route
	err := f.Submit(r.Context(), func(ctx context.Context, d domain.Draft) error {
		route, err := h.editor.AddEvent(ctx, d)
		target = route
		return err
	})
	var verrs domain.ValidationError
	switch {
	case errors.As(err, &verrs):
		h.renderForm(w, r, http.StatusUnprocessableEntity, f, picker, nil)
	case err != nil && r.Context().Err() != nil:
		h.logger.InfoContext(r.Context(), "client went away during create", "err", err)
	case err != nil:
		h.renderForm(w, r, http.StatusBadGateway, f, picker, drain(r))
	default:
		h.redirect(w, r, target)
	}
}

// ConfirmDelete asks before deleting.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	notices := takeFlash(w, r)
	id, _ := strconv.ParseInt(r.PathValue("eventID"), 10, 64)
	ev, ok := h.editor.Events().Find(id)
	if id <= 0 || !ok {
		h.render(w, r, http.StatusNotFound, "notfound", page{Title: "Event not found", Notices: notices})
		return
	}
	h.render(w, r, http.StatusOK, "confirm", page{
		Title:   "Delete " + ev.Title,
		Notices: notices,
		Data:    detailData{Event: ev, Prompt: domain.MsgConfirm},
	})
}

// DeleteEvent deletes when the confirmation form answered yes and returns
// to the detail page otherwise.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if h.stillLoading(w, r) {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("eventID"), 10, 64)
	if err != nil || id <= 0 {
		h.render(w, r, http.StatusNotFound, "notfound", page{Title: "Event not found"})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	confirmed := domain.ConfirmFunc(func(context.Context, string) bool {
		return r.PostForm.Get("confirm") == "yes"
	})

	target, _, err := h.editor.DeleteEvent(r.Context(), id, confirmed)
	switch {
	case err != nil && r.Context().Err() != nil:
		h.logger.InfoContext(r.Context(), "client went away during delete", "id", id, "err", err)
	case err != nil:
		h.redirect(w, r, router.ToDetail(id))
	default:
		h.redirect(w, r, target)
	}
}

// stillLoading rejects mutations until the initial fetch settled, since
// a successful load replaces the collection.
func (h *Handler) stillLoading(w http.ResponseWriter, r *http.Request) bool {
	if !h.editor.Events().Loading() {
		return false
	}
	w.Header().Set("Retry-After", "1")
	h.render(w, r, http.StatusServiceUnavailable, "loading", page{Title: "Loading"})
	return true
}

// drain returns the notices raised while serving r.
func drain(r *http.Request) []domain.Notice {
	if in, ok := notify.InboxFromContext(r.Context()); ok {
		return in.Drain()
	}
	return nil
}

// redirect moves the request's notices into the flash cookie and sends
// the browser to route.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, route router.Route) {
	setFlash(w, drain(r))
	http.Redirect(w, r, route.Path(), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, f *form.Form, picker *form.MonthPicker, notices []domain.Notice) {
	h.render(w, r, status, "form", page{
		Title:   "New event",
		Notices: notices,
		Data: formData{
			Draft:    f.Draft(),
			DateText: f.DateText(),
			Errors:   f.Errors().Messages(),
			Picker:   picker,
		},
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages[name].ExecuteTemplate(w, "layout", p); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "page", name, "err", err)
	}
}
