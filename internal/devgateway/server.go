package devgateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"hash/fnv"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
)

// ServerOptions groups dependencies for Server.
type ServerOptions struct {
	Store    Store
	Bindings BindingStore

	// AdminID is the identifier accepted on the x-admin-id header.
	// Empty disables the admin surface entirely.
	AdminID string

	Logger *slog.Logger
}

// Server serves the backend wire surface: secure login, membership
// verification, and the admin CRUD endpoints. It also exposes a small
// /dev/ surface for scripting state that a real deployment would get
// from the platform itself, such as channel joins.
type Server struct {
	store    Store
	bindings BindingStore
	adminID  string
	logger   *slog.Logger
}

// NewServer constructs a Server. Store and Bindings are required.
func NewServer(opts ServerOptions) *Server {
	if opts.Store == nil {
		panic("devgateway: store is required")
	}
	if opts.Bindings == nil {
		panic("devgateway: binding store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    opts.Store,
		bindings: opts.Bindings,
		adminID:  opts.AdminID,
		logger:   logger,
	}
}

// Handler returns the fully routed and middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /secure-login", s.handleSecureLogin)
	mux.HandleFunc("POST /verify-membership", s.handleVerifyMembership)
	mux.HandleFunc("POST /dev/join", s.handleDevJoin)

	admin := http.NewServeMux()
	admin.HandleFunc("GET /admin/users", s.handleListUsers)
	admin.HandleFunc("PUT /admin/users/{id}", s.handleUpdateUser)
	admin.HandleFunc("DELETE /admin/users/{id}", s.handleDeleteUser)
	admin.HandleFunc("GET /admin/channels", s.handleListChannels)
	admin.HandleFunc("POST /admin/channels", s.handleCreateChannel)
	admin.HandleFunc("DELETE /admin/channels/{id}", s.handleDeleteChannel)
	admin.HandleFunc("GET /admin/origins", s.handleListOrigins)
	admin.HandleFunc("POST /admin/origins", s.handleCreateOrigin)
	admin.HandleFunc("DELETE /admin/origins/{id}", s.handleDeleteOrigin)
	admin.HandleFunc("POST /admin/resolve-channel", s.handleResolveChannel)
	mux.Handle("/admin/", s.requireAdmin(admin))

	return logging(s.logger)(recoverer(s.logger)(mux))
}

// logging logs every request with method, path, status, and duration.
func logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// recoverer converts handler panics into 500 responses and logs them.
func recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requireAdmin authorizes admin calls by the x-admin-id header.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminID == "" {
			writeError(w, errorParams{Code: http.StatusForbidden, ErrCode: "admin_disabled",
				Err: errors.New("admin surface is disabled")})
			return
		}
		if r.Header.Get("x-admin-id") != s.adminID {
			writeError(w, errorParams{Code: http.StatusForbidden, ErrCode: "admin_id_rejected",
				Err: errors.New("admin id not recognized")})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	TelegramID int64  `json:"telegram_id"`
	DeviceID   string `json:"device_id"`
	Name       string `json:"name"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	PhotoURL   string `json:"photo_url"`
	AuthDate   int64  `json:"auth_date"`
}

type loginResponse struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
	Role    string `json:"role,omitempty"`
}

// handleSecureLogin applies the device binding policy and returns the
// access decision. One device serves one account: the first login binds
// the device, every later login from the same device with a different
// account is refused.
func (s *Server) handleSecureLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TelegramID == 0 || req.DeviceID == "" {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request",
			Err: errors.New("telegram_id and device_id are required")})
		return
	}

	owner, err := s.bindings.Bind(r.Context(), req.DeviceID, req.TelegramID)
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "binding_failure", Err: err})
		return
	}
	if owner != req.TelegramID {
		writeJSON(w, http.StatusOK, loginResponse{
			Blocked: true,
			Reason:  "device is already registered to another account",
		})
		return
	}

	user, err := s.store.UpsertUser(r.Context(), model.User{
		TelegramID: req.TelegramID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Username:   req.Username,
		PhotoURL:   req.PhotoURL,
		Name:       req.Name,
	})
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	if user.IsBlocked {
		writeJSON(w, http.StatusOK, loginResponse{Blocked: true, Reason: "account is blocked"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Blocked: false, Role: user.Role})
}

type verifyRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

type missingChannel struct {
	ChannelID int64  `json:"channel_id"`
	Name      string `json:"channel_name"`
	URL       string `json:"channel_url"`
}

type verifyResponse struct {
	Verified        bool             `json:"verified"`
	MissingChannels []missingChannel `json:"missing_channels"`
}

// handleVerifyMembership reports which required channels the user has
// not joined, in the order channels were configured.
func (s *Server) handleVerifyMembership(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TelegramID == 0 {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request",
			Err: errors.New("telegram_id is required")})
		return
	}

	channels, err := s.store.ListChannels(r.Context())
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}

	missing := make([]missingChannel, 0, len(channels))
	for _, ch := range channels {
		member, err := s.store.IsMember(r.Context(), req.TelegramID, ch.ChannelID)
		if err != nil {
			writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
			return
		}
		if !member {
			missing = append(missing, missingChannel{ChannelID: ch.ChannelID, Name: ch.Name, URL: ch.URL})
		}
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Verified:        len(missing) == 0,
		MissingChannels: missing,
	})
}

type devJoinRequest struct {
	TelegramID int64 `json:"telegram_id"`
	ChannelID  int64 `json:"channel_id"`
}

// handleDevJoin records a channel join, standing in for the platform
// event a real deployment would observe.
func (s *Server) handleDevJoin(w http.ResponseWriter, r *http.Request) {
	var req devJoinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TelegramID == 0 || req.ChannelID == 0 {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request",
			Err: errors.New("telegram_id and channel_id are required")})
		return
	}
	if err := s.store.JoinChannel(r.Context(), req.TelegramID, req.ChannelID); err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"joined": true})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var user model.User
	if !decodeJSON(w, r, &user) {
		return
	}
	user.ID = id
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.store.ListChannels(r.Context())
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

func (s *Server) handleCreateChannel(w http.ResponseWriter, r *http.Request) {
	var channel model.Channel
	if !decodeJSON(w, r, &channel) {
		return
	}
	if channel.Name == "" || channel.URL == "" {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request",
			Err: errors.New("channel_name and channel_url are required")})
		return
	}
	created, err := s.store.CreateChannel(r.Context(), channel)
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteChannel(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOrigins(w http.ResponseWriter, r *http.Request) {
	origins, err := s.store.ListOrigins(r.Context())
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, origins)
}

func (s *Server) handleCreateOrigin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"origin_url"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request",
			Err: errors.New("origin_url is required")})
		return
	}
	created, err := s.store.CreateOrigin(r.Context(), req.URL)
	if err != nil {
		writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteOrigin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteOrigin(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResolveChannel resolves a channel handle deterministically: the
// same handle always maps to the same synthetic platform id, so tests
// and dev sessions are reproducible without platform access.
func (s *Server) handleResolveChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	handle := strings.TrimPrefix(strings.TrimSpace(req.Username), "@")
	if handle == "" {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request",
			Err: errors.New("username is required")})
		return
	}

	writeJSON(w, http.StatusOK, model.ResolvedChannel{
		ID:    syntheticChannelID(handle),
		Title: titleFromHandle(handle),
	})
}

// syntheticChannelID maps a handle onto the platform's negative
// channel-id space.
func syntheticChannelID(handle string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(handle)))
	return -1_000_000_000 - int64(h.Sum32())
}

func titleFromHandle(handle string) string {
	runes := []rune(handle)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id",
			Err: errors.New("id must be a non-zero integer")})
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, errorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	}
	writeError(w, errorParams{Code: http.StatusInternalServerError, ErrCode: "store_failure", Err: err})
}

// decodeJSON decodes the request body into dst; on failure the error
// response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, errorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

type errorParams struct {
	Code    int
	ErrCode string
	Err     error
}

func writeError(w http.ResponseWriter, p errorParams) {
	writeJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}
