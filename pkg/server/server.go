package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	pkgerrors "github.com/pkg/errors"

	"github.com/MJKeo/game-nerd-bot/pkg/agent"
	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// AgentFactory builds a fresh agent (with its own private memory) for each
// chat session. Sessions never share mutable state.
type AgentFactory func() (*agent.Agent, error)

// Server exposes the chat surface over HTTP: named sessions, per-session
// history, and a chat endpoint that runs one mediated turn per request.
// Sessions live in memory only and vanish on restart.
type Server struct {
	echo     *echo.Echo
	newAgent AgentFactory

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	UID       string
	Title     string
	CreatedAt time.Time

	agent *agent.Agent
	// One turn at a time per session; concurrent requests for the same
	// session queue here instead of interleaving history.
	turnMu sync.Mutex
}

type sessionRequest struct {
	Title string `json:"title"`
}

type sessionResponse struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	CreatedTs int64  `json:"createdTs"`
}

type chatRequest struct {
	Content string `json:"content"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type messageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// New builds the HTTP server around the given agent factory.
func New(newAgent AgentFactory) *Server {
	s := &Server{
		echo:     echo.New(),
		newAgent: newAgent,
		sessions: make(map[string]*session),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	g := s.echo.Group("/api/v1")
	g.GET("/sessions", s.listSessions)
	g.POST("/sessions", s.createSession)
	g.DELETE("/sessions/:uid", s.deleteSession)
	g.GET("/sessions/:uid/messages", s.listMessages)
	g.POST("/sessions/:uid/chat", s.handleChat)
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe blocks serving HTTP until the listener fails or the
// context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("chat server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return pkgerrors.Wrap(err, "chat server")
	}
	return nil
}

func (s *Server) listSessions(c *echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := make([]sessionResponse, 0, len(s.sessions))
	for _, sess := range s.sessions {
		resp = append(resp, sessionResponse{
			UID:       sess.UID,
			Title:     sess.Title,
			CreatedTs: sess.CreatedAt.Unix(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createSession(c *echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		req.Title = "New Chat"
	}

	ag, err := s.newAgent()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sess := &session{
		UID:       uuid.New().String()[:8],
		Title:     req.Title,
		CreatedAt: time.Now(),
		agent:     ag,
	}

	s.mu.Lock()
	s.sessions[sess.UID] = sess
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, sessionResponse{
		UID:       sess.UID,
		Title:     sess.Title,
		CreatedTs: sess.CreatedAt.Unix(),
	})
}

func (s *Server) deleteSession(c *echo.Context) error {
	uid := c.Param("uid")

	s.mu.Lock()
	_, ok := s.sessions[uid]
	delete(s.sessions, uid)
	s.mu.Unlock()

	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listMessages(c *echo.Context) error {
	sess, err := s.getSession(c.Param("uid"))
	if err != nil {
		return err
	}

	history := sess.agent.History()
	resp := make([]messageResponse, 0, len(history))
	for _, msg := range history {
		// Tool plumbing stays internal; the UI surface shows only the
		// user/assistant exchange.
		if msg.Role != types.RoleUser && msg.Role != types.RoleAssistant {
			continue
		}
		if msg.Content == "" {
			continue
		}
		resp = append(resp, messageResponse{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleChat(c *echo.Context) error {
	sess, err := s.getSession(c.Param("uid"))
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content required")
	}

	sess.turnMu.Lock()
	defer sess.turnMu.Unlock()

	reply, err := sess.agent.Run(c.Request().Context(), req.Content)
	if err != nil && !errors.Is(err, agent.ErrLoopCeiling) {
		// Model-provider failure: one error reply for this turn, history
		// stays intact for the next one.
		slog.Error("chat turn failed", "session", sess.UID, "err", err)
		return echo.NewHTTPError(http.StatusBadGateway, "the model provider is unavailable right now")
	}

	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) getSession(uid string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[uid]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return sess, nil
}
