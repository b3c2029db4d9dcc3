package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"opsboard/internal/amqp"
	"opsboard/internal/sheets"
)

// EventPublisher pushes row events onto the audit stream. Nil disables
// publishing; a publish failure is logged and never fails the request.
type EventPublisher interface {
	PublishRowEvent(ctx context.Context, e *amqp.RowEvent) error
}

// Deps bundles the per-table repositories the server reads and writes. In
// production one adapter instance backs every field.
type Deps struct {
	Sales       sheets.SalesReader
	SalesWriter sheets.SalesWriter
	Salaries    sheets.SalaryReader
	Loans       sheets.LoanReader
	Liabilities sheets.LiabilityReader
	Advances    sheets.AdvanceReader
	Purchases   sheets.PurchaseReader
	Staff       sheets.StaffReader
	Clients     sheets.ClientReader
	Proposals   sheets.ProposalRepository
	Users       sheets.UserReader

	Events EventPublisher
}

type Server struct {
	http.Server

	sales       sheets.SalesReader
	salesWriter sheets.SalesWriter
	salaries    sheets.SalaryReader
	loans       sheets.LoanReader
	liabilities sheets.LiabilityReader
	advances    sheets.AdvanceReader
	purchases   sheets.PurchaseReader
	staff       sheets.StaffReader
	clients     sheets.ClientReader
	proposals   sheets.ProposalRepository
	users       sheets.UserReader
	events      EventPublisher

	sheetTimeout time.Duration
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps, sheetTimeout time.Duration) *Server {
	mux := http.NewServeMux()

	if sheetTimeout <= 0 {
		sheetTimeout = 10 * time.Second
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		sales:        deps.Sales,
		salesWriter:  deps.SalesWriter,
		salaries:     deps.Salaries,
		loans:        deps.Loans,
		liabilities:  deps.Liabilities,
		advances:     deps.Advances,
		purchases:    deps.Purchases,
		staff:        deps.Staff,
		clients:      deps.Clients,
		proposals:    deps.Proposals,
		users:        deps.Users,
		events:       deps.Events,
		sheetTimeout: sheetTimeout,
		rateLimiter:  newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/sales", s.wrap(s.withSession(s.handleListSales)))
	mux.HandleFunc("POST /api/sales", s.wrap(s.withSession(s.handleCreateSale)))
	mux.HandleFunc("GET /api/dashboard", s.wrap(s.withSession(s.handleDashboard)))
	mux.HandleFunc("GET /api/ae", s.wrap(s.withSession(s.handleAEPerformance)))

	mux.HandleFunc("GET /api/salary", s.wrap(s.withSession(s.requireAdmin(s.handleSalary))))
	mux.HandleFunc("GET /api/loans", s.wrap(s.withSession(s.handleLoans)))
	mux.HandleFunc("GET /api/liabilities", s.wrap(s.withSession(s.handleLiabilities)))
	mux.HandleFunc("GET /api/advances", s.wrap(s.withSession(s.handleAdvances)))
	mux.HandleFunc("GET /api/purchases", s.wrap(s.withSession(s.handlePurchases)))

	mux.HandleFunc("GET /api/staff", s.wrap(s.withSession(s.handleStaff)))
	mux.HandleFunc("GET /api/clients/search", s.wrap(s.withSession(s.handleClientSearch)))

	mux.HandleFunc("GET /api/proposals", s.wrap(s.withSession(s.handleListProposals)))
	mux.HandleFunc("POST /api/proposals", s.wrap(s.withSession(s.handleCreateProposal)))
	mux.HandleFunc("PATCH /api/proposals/{id}", s.wrap(s.withSession(s.handleUpdateProposal)))

	return s
}

// wrap adds security headers, rate limiting for mutations, and request
// logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), contextKey("request_id"), requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded", "")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// Shutdown stops the rate limiter cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// sheetContext bounds one round of sheet reads or writes.
func (s *Server) sheetContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.sheetTimeout)
}

// publishEvent pushes one audit event, best-effort.
func (s *Server) publishEvent(ctx context.Context, e *amqp.RowEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRowEvent(ctx, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish row event",
			"error", err,
			"sheet", e.Sheet,
			"row_ref", e.RowRef)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Simple in-memory rate limiter: 60 mutations per minute per client IP.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes.
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}
