// Package upstreamtest provides an in-memory stand-in for the upstream
// employee service. It speaks the same {data, status} envelope, can be
// told to answer with arbitrary statuses, records every request and can
// emulate the upstream rate limiter.
package upstreamtest

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"employee-api/internal/domain"
)

const statusOK = "Successfully processed request."

// Response is a canned answer returned instead of the normal handling.
type Response struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

// Request is one request as seen by the fake.
type Request struct {
	Method string
	Path   string
	Body   string
}

type Fake struct {
	mu        sync.Mutex
	employees []domain.Employee
	overrides map[string]Response
	requests  []Request

	limit     int
	window    time.Duration
	windowEnd time.Time
	served    int
	now       func() time.Time

	router chi.Router
}

type Option func(*Fake)

// WithEmployees seeds the store with the given records, in order.
func WithEmployees(emps ...domain.Employee) Option {
	return func(f *Fake) { f.employees = append(f.employees, emps...) }
}

// WithRateLimit answers 429 once more than n requests arrive within window.
func WithRateLimit(n int, window time.Duration) Option {
	return func(f *Fake) { f.limit, f.window = n, window }
}

// WithClock replaces time.Now, for rate limit tests.
func WithClock(now func() time.Time) Option {
	return func(f *Fake) { f.now = now }
}

func New(opts ...Option) *Fake {
	f := &Fake{
		overrides: map[string]Response{},
		now:       time.Now,
	}
	for _, o := range opts {
		o(f)
	}

	r := chi.NewRouter()
	r.Get("/", f.handleList)
	r.Post("/", f.handleCreate)
	r.Delete("/", f.handleDelete)
	r.Get("/{id}", f.handleGet)
	f.router = r
	return f
}

func (f *Fake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(strings.NewReader(string(body)))

	f.mu.Lock()
	f.requests = append(f.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	canned, overridden := f.overrides[r.Method]
	limited, retryAfter := f.rateLimitedLocked()
	f.mu.Unlock()

	switch {
	case limited:
		w.Header().Set("Retry-After", strconv.Itoa(ceilSeconds(retryAfter)))
		writeRaw(w, r, http.StatusTooManyRequests, `{"status": "Too many requests"}`)
	case overridden:
		if canned.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(ceilSeconds(canned.RetryAfter)))
		}
		writeRaw(w, r, canned.Status, canned.Body)
	default:
		f.router.ServeHTTP(w, r)
	}
}

// ceilSeconds rounds d up to whole seconds, never below one, so a limited
// client always gets a usable hint.
func ceilSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func (f *Fake) rateLimitedLocked() (bool, time.Duration) {
	if f.limit <= 0 {
		return false, 0
	}
	now := f.now()
	if now.After(f.windowEnd) {
		f.windowEnd = now.Add(f.window)
		f.served = 0
	}
	f.served++
	if f.served > f.limit {
		return true, f.windowEnd.Sub(now)
	}
	return false, 0
}

// Override makes every request with method answer with resp.
func (f *Fake) Override(method string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[strings.ToUpper(method)] = resp
}

func (f *Fake) ClearOverrides() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides = map[string]Response{}
}

// Requests returns a copy of the request log.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// CountMethod returns how many requests used method.
func (f *Fake) CountMethod(method string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Employees returns a copy of the stored records.
func (f *Fake) Employees() []domain.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Employee(nil), f.employees...)
}

// Seed appends n generated records using rnd.
func (f *Fake) Seed(n int, rnd *rand.Rand) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < n; i++ {
		f.employees = append(f.employees, Generate(rnd))
	}
}

func (f *Fake) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	data := append([]domain.Employee{}, f.employees...)
	f.mu.Unlock()
	writeEnvelope(w, r, http.StatusOK, data)
}

func (f *Fake) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.ID == id {
			writeEnvelope(w, r, http.StatusOK, e)
			return
		}
	}
	writeRaw(w, r, http.StatusNotFound, `{"status": "Employee not found"}`)
}

func (f *Fake) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		writeRaw(w, r, http.StatusBadRequest, `{"status": "Invalid input"}`)
		return
	}
	e := domain.Employee{
		ID:     uuid.NewString(),
		Name:   in.Name,
		Salary: domain.IntPtr(in.Salary),
		Age:    in.Age,
		Title:  in.Title,
		Email:  in.Email,
	}
	f.mu.Lock()
	f.employees = append(f.employees, e)
	f.mu.Unlock()
	writeEnvelope(w, r, http.StatusOK, e)
}

func (f *Fake) handleDelete(w http.ResponseWriter, r *http.Request) {
	var in domain.DeleteEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		writeRaw(w, r, http.StatusBadRequest, `{"status": "Invalid input"}`)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.employees {
		if e.Name == in.Name {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			writeEnvelope(w, r, http.StatusOK, true)
			return
		}
	}
	writeEnvelope(w, r, http.StatusOK, false)
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, data any) {
	b, err := json.Marshal(map[string]any{"data": data, "status": statusOK})
	if err != nil {
		writeRaw(w, r, http.StatusInternalServerError, fmt.Sprintf(`{"status": %q}`, err.Error()))
		return
	}
	writeRaw(w, r, status, string(b))
}

// writeRaw answers with body, brotli-compressed when the client accepts it.
func writeRaw(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	if body == "" || !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
		w.WriteHeader(status)
		io.WriteString(w, body)
		return
	}
	w.Header().Set("Content-Encoding", "br")
	w.WriteHeader(status)
	bw := brotli.NewWriter(w)
	io.WriteString(bw, body)
	bw.Close()
}
