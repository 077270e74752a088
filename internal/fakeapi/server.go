// Package fakeapi is an in-memory implementation of the resume analysis
// HTTP API. It backs integration tests and the hidden "fakeapi" command
// used for local demos; it never analyzes anything and answers every
// upload with a configurable canned analysis.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = 24 * time.Hour

// CreatedAtLayout is the timestamp format of created_at fields.
const CreatedAtLayout = "2006-01-02 15:04:05"

// SampleAnalysis is the default canned analysis payload.
var SampleAnalysis = json.RawMessage(`{
  "skills": {
    "programming_languages": ["python", "go", "sql"],
    "web_technologies": ["react", "docker"],
    "databases": ["postgresql"],
    "cloud_platforms": [],
    "data_science": ["pandas"],
    "total_count": 7
  },
  "missing_sections": ["objective", "projects"],
  "experience_analysis": {
    "action_words": ["led", "built", "improved"],
    "action_words_count": 3,
    "quantifiable_achievements": 4,
    "numbers_found": ["30%", "2019", "5", "12"]
  },
  "readability_score": 48.3,
  "word_frequency": {"team": 6, "data": 5, "python": 4, "systems": 3},
  "overall_score": 72,
  "recommendations": [
    "Add more technical skills to improve your profile visibility.",
    "Consider adding these missing sections: objective, projects",
    "Use more action words to describe your achievements."
  ]
}`)

type user struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	hash     []byte
}

type record struct {
	ID        int64
	UserID    int64
	Filename  string
	Analysis  json.RawMessage
	CreatedAt time.Time
}

type failure struct {
	status  int
	message string
}

type Server struct {
	mu       sync.Mutex
	secret   []byte
	now      func() time.Time
	log      logging.Logger
	analysis json.RawMessage

	users      map[string]*user
	records    []record
	nextUser   int64
	nextRecord int64
	failNext   map[string]failure
	hits       map[string]int

	mux *http.ServeMux
}

type Option func(*Server)

// WithClock overrides the time source for token expiry and created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger logs every request.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithAnalysis replaces the canned analysis payload.
func WithAnalysis(payload json.RawMessage) Option {
	return func(s *Server) { s.analysis = payload }
}

func New(opts ...Option) *Server {
	s := &Server{
		secret:   common.GenerateRandByteArray(32),
		now:      time.Now,
		log:      logging.Discard(),
		analysis: SampleAnalysis,
		users:    map[string]*user{},
		failNext: map[string]failure{},
		hits:     map[string]int{},
		mux:      http.NewServeMux(),
	}
	for _, o := range opts {
		o(s)
	}

	s.mux.HandleFunc("POST /api/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/upload-resume", s.authorized(s.handleUpload))
	s.mux.HandleFunc("GET /api/analyses", s.authorized(s.handleList))
	s.mux.HandleFunc("GET /api/analysis/{id}", s.authorized(s.handleGet))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := routeName(r)
	s.mu.Lock()
	s.hits[route]++
	f, failing := s.failNext[route]
	delete(s.failNext, route)
	s.mu.Unlock()

	s.log.Debug(r.Context(), "fakeapi request",
		"method", r.Method, "path", r.URL.Path,
		"request_id", r.Header.Get(common.RequestIDHeaderName))

	if failing {
		writeMessage(w, f.status, f.message)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// FailNext makes the next request to route ("login", "register",
// "upload-resume", "analyses" or "analysis") answer with status and
// message.
func (s *Server) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[route] = failure{status: status, message: message}
}

// Hits returns how many requests route has received.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// SetAnalysis replaces the canned payload for later uploads.
func (s *Server) SetAnalysis(payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = payload
}

// AddUser registers a user directly and returns its id.
func (s *Server) AddUser(username, email, password string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.addUserLocked(username, email, password)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// IssueToken signs a token for userID that expires after ttl.
func (s *Server) IssueToken(userID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     s.now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

var errUserExists = errors.New("User already exists")

func (s *Server) addUserLocked(username, email, password string) (*user, error) {
	for _, u := range s.users {
		if u.Username == username || (email != "" && u.Email == email) {
			return nil, errUserExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	s.nextUser++
	u := &user{ID: s.nextUser, Username: username, Email: email, hash: hash}
	s.users[username] = u
	return u, nil
}

type authBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body authBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.Username == "" || body.Email == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	s.mu.Lock()
	u, err := s.addUserLocked(body.Username, body.Email, body.Password)
	s.mu.Unlock()
	if errors.Is(err, errUserExists) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeAuth(w, u, "User created successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body authBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	s.mu.Lock()
	var found *user
	for _, u := range s.users {
		if u.Username == body.Username || u.Email == body.Username {
			found = u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(body.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	s.writeAuth(w, found, "Login successful")
}

func (s *Server) writeAuth(w http.ResponseWriter, u *user, msg string) {
	token, err := s.IssueToken(u.ID, TokenTTL)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"token":   token,
		"user":    u,
	})
}

type userHandler func(w http.ResponseWriter, r *http.Request, userID int64)

func (s *Server) authorized(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(common.AuthorizationHeaderName)
		if raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Token is missing")
			return
		}
		raw = strings.TrimPrefix(raw, common.BearerPrefix)

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Token is invalid")
			return
		}
		id, ok := claims["user_id"].(float64)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Token is invalid")
			return
		}
		next(w, r, int64(id))
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, userID int64) {
	file, hdr, err := r.FormFile("resume")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	name := hdr.Filename
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "No file selected")
		return
	}
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".pdf") && !strings.HasSuffix(lower, ".docx") {
		writeMessage(w, http.StatusBadRequest, "Only PDF and DOCX files are allowed")
		return
	}
	if hdr.Size == 0 {
		writeMessage(w, http.StatusBadRequest, "Could not extract text from file")
		return
	}

	s.mu.Lock()
	s.nextRecord++
	rec := record{
		ID:        s.nextRecord,
		UserID:    userID,
		Filename:  name,
		Analysis:  append(json.RawMessage(nil), s.analysis...),
		CreatedAt: s.now().UTC(),
	}
	s.records = append(s.records, rec)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Resume analyzed successfully",
		"analysis_id": rec.ID,
		"analysis":    rec.Analysis,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	s.mu.Lock()
	var mine []record
	for _, rec := range s.records {
		if rec.UserID == userID {
			mine = append(mine, rec)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(mine, func(i, j int) bool {
		if !mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].CreatedAt.After(mine[j].CreatedAt)
		}
		return mine[i].ID > mine[j].ID
	})

	out := make([]map[string]any, 0, len(mine))
	for _, rec := range mine {
		out = append(out, map[string]any{
			"id":         rec.ID,
			"filename":   rec.Filename,
			"analysis":   rec.Analysis,
			"created_at": rec.CreatedAt.Format(CreatedAtLayout),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id && rec.UserID == userID {
			writeJSON(w, http.StatusOK, map[string]any{
				"filename":   rec.Filename,
				"analysis":   rec.Analysis,
				"created_at": rec.CreatedAt.Format(CreatedAtLayout),
			})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Analysis not found")
}

func routeName(r *http.Request) string {
	p := strings.TrimPrefix(r.URL.Path, "/api/")
	if strings.HasPrefix(p, "analysis/") {
		return "analysis"
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		_, _ = fmt.Fprintf(w, `{"message":%q}`, err.Error())
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
