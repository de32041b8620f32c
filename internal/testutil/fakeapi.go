package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"taskctl/internal/service"
)

// RecordedRequest is one request received by FakeAPI.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          string
}

type fakeUser struct {
	email    string
	password string
	token    string
}

type ownedTask struct {
	owner string
	task  service.Task
}

// FakeAPI is an httptest server speaking the task server's HTTP API.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]fakeUser
	tasks    []ownedTask
	nextID   int
	requests []RecordedRequest

	forcedStatus int
	forcedBody   string
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	api := &FakeAPI{
		users:  make(map[string]fakeUser),
		nextID: 1,
	}
	api.Server = httptest.NewServer(api.routes())
	t.Cleanup(api.Close)
	return api
}

func (a *FakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(a.record)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signin", a.signIn)
		r.Post("/signup", a.signUp)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(a.requireToken)
		r.Get("/", a.listAll)
		r.Post("/", a.create)
		r.Get("/my", a.listMine)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.get)
			r.Put("/", a.update)
			r.Delete("/", a.delete)
			r.Patch("/status", a.updateStatus)
		})
	})
	return r
}

// AddUser registers an account whose signin returns token.
func (a *FakeAPI) AddUser(username, email, password, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[username] = fakeUser{email: email, password: password, token: token}
}

// AddTask stores a task owned by owner. An empty ID is assigned.
func (a *FakeAPI) AddTask(owner string, task service.Task) service.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	if task.ID == "" {
		task.ID = service.ID(strconv.Itoa(a.nextID))
	}
	a.nextID++
	a.tasks = append(a.tasks, ownedTask{owner: owner, task: task})
	return task
}

// Task returns the stored task with id.
func (a *FakeAPI) Task(id service.ID) (service.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, ot := range a.tasks {
		if ot.task.ID == id {
			return ot.task, true
		}
	}
	return service.Task{}, false
}

// Requests returns the requests received so far.
func (a *FakeAPI) Requests() []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]RecordedRequest, len(a.requests))
	copy(out, a.requests)
	return out
}

// ForceError makes every later request fail with status and raw body.
// A zero status clears it.
func (a *FakeAPI) ForceError(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.forcedStatus = status
	a.forcedBody = body
}

func (a *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		a.mu.Lock()
		a.requests = append(a.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(body),
		})
		status, forced := a.forcedStatus, a.forcedBody
		a.mu.Unlock()

		if status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			io.WriteString(w, forced)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userKey struct{}

func (a *FakeAPI) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if ok {
			a.mu.Lock()
			for name, u := range a.users {
				if u.token == token {
					a.mu.Unlock()
					next.ServeHTTP(w, r.WithContext(withUser(r, name)))
					return
				}
			}
			a.mu.Unlock()
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Error: Unauthorized"})
	})
}

func (a *FakeAPI) signIn(w http.ResponseWriter, r *http.Request) {
	var creds service.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request"})
		return
	}

	a.mu.Lock()
	u, ok := a.users[creds.Username]
	a.mu.Unlock()
	if !ok || u.password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": u.token,
		"tokenType":   "Bearer",
		"id":          1,
		"username":    creds.Username,
		"email":       u.email,
		"roles":       []string{"ROLE_USER"},
	})
}

func (a *FakeAPI) signUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.users[req.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Error: Username is already taken!"})
		return
	}
	a.users[req.Username] = fakeUser{email: req.Email, password: req.Password, token: "token-" + req.Username}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully!"})
}

func (a *FakeAPI) listAll(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	out := make([]map[string]any, 0, len(a.tasks))
	for _, ot := range a.tasks {
		out = append(out, wireTask(ot.task))
	}
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (a *FakeAPI) listMine(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	a.mu.Lock()
	out := make([]map[string]any, 0, len(a.tasks))
	for _, ot := range a.tasks {
		if ot.owner == user {
			out = append(out, wireTask(ot.task))
		}
	}
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (a *FakeAPI) get(w http.ResponseWriter, r *http.Request) {
	task, ok := a.Task(service.ID(chi.URLParam(r, "id")))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	writeJSON(w, http.StatusOK, wireTask(task))
}

func (a *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if err := decodeInput(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	task := a.AddTask(userFrom(r), service.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	})
	writeJSON(w, http.StatusOK, wireTask(task))
}

func (a *FakeAPI) update(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if err := decodeInput(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	id := service.ID(chi.URLParam(r, "id"))
	task, ok := a.mutate(id, func(t *service.Task) {
		t.Title = in.Title
		t.Description = in.Description
		t.Status = in.Status
		t.Priority = in.Priority
		t.DueDate = in.DueDate
	})
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	writeJSON(w, http.StatusOK, wireTask(task))
}

func (a *FakeAPI) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status service.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	task, ok := a.mutate(service.ID(chi.URLParam(r, "id")), func(t *service.Task) {
		t.Status = body.Status
	})
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	writeJSON(w, http.StatusOK, wireTask(task))
}

func (a *FakeAPI) delete(w http.ResponseWriter, r *http.Request) {
	id := service.ID(chi.URLParam(r, "id"))
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, ot := range a.tasks {
		if ot.task.ID == id {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
}

func (a *FakeAPI) mutate(id service.ID, fn func(*service.Task)) (service.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.tasks {
		if a.tasks[i].task.ID == id {
			fn(&a.tasks[i].task)
			return a.tasks[i].task, true
		}
	}
	return service.Task{}, false
}

func decodeInput(r *http.Request, in *service.TaskInput) error {
	return json.NewDecoder(r.Body).Decode(in)
}

// wireTask renders a task the way the server does: numeric ids and
// zone-less timestamps.
func wireTask(t service.Task) map[string]any {
	out := map[string]any{
		"id":          string(t.ID),
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status.String(),
		"priority":    t.Priority.String(),
		"dueDate":     nil,
	}
	if n, err := strconv.Atoi(string(t.ID)); err == nil {
		out["id"] = n
	}
	if t.Status == service.StatusUnset {
		out["status"] = nil
	}
	if t.Priority == service.PriorityUnset {
		out["priority"] = nil
	}
	if t.DueDate.Valid {
		out["dueDate"] = t.DueDate.Time.Format(service.WireLayout)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
