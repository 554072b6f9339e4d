package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/api/middleware"
	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
)

var (
	nova  = domain.Actor{Username: "Nova", Role: domain.RolePilot, TokenID: "tok-nova"}
	admin = domain.Actor{Username: "JunaidRafi", Role: domain.RoleAdmin, TokenID: "tok-admin"}
)

// newJSONContext builds an echo.Context for a JSON request. A non-anonymous
// actor is stored the way the Auth middleware would.
func newJSONContext(method, target, body string, actor domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if !actor.Anonymous() {
		c.Set(middleware.ActorKey, actor)
	}
	return c, rec
}

func newGetContext(target string, actor domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	return newJSONContext(http.MethodGet, target, "", actor)
}

// --- auth ---

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, actor domain.Actor) error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, actor domain.Actor) error {
	return s.logoutFn(ctx, actor)
}

// --- logs ---

type stubLogService struct {
	createFn  func(ctx context.Context, actor domain.Actor, owner, message string) (*domain.LogEntry, error)
	publicFn  func(ctx context.Context, actor domain.Actor, id string) error
	deleteFn  func(ctx context.Context, actor domain.Actor, id string) error
	listFn    func(ctx context.Context, limit int) ([]*domain.LogEntry, error)
	historyFn func(ctx context.Context, actor domain.Actor, username string) (*ports.UserHistory, error)
	feedFn    func(ctx context.Context, actor domain.Actor) (*ports.MasterFeed, error)
}

func (s *stubLogService) CreateLog(ctx context.Context, actor domain.Actor, owner, message string) (*domain.LogEntry, error) {
	return s.createFn(ctx, actor, owner, message)
}

func (s *stubLogService) SetPublic(ctx context.Context, actor domain.Actor, id string) error {
	return s.publicFn(ctx, actor, id)
}

func (s *stubLogService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubLogService) ListPublic(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	return s.listFn(ctx, limit)
}

func (s *stubLogService) History(ctx context.Context, actor domain.Actor, username string) (*ports.UserHistory, error) {
	return s.historyFn(ctx, actor, username)
}

func (s *stubLogService) MasterFeed(ctx context.Context, actor domain.Actor) (*ports.MasterFeed, error) {
	return s.feedFn(ctx, actor)
}

// --- broadcast ---

type stubBroadcastService struct {
	msg    string
	setErr error
	setBy  domain.Actor
}

func (s *stubBroadcastService) Get(context.Context) (string, error) {
	return s.msg, nil
}

func (s *stubBroadcastService) Set(_ context.Context, message string, actor domain.Actor) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setBy = actor
	s.msg = message
	return nil
}

// --- avatars ---

type stubAvatarService struct {
	got  ports.AvatarUpload
	body []byte
	ref  string
	err  error
}

func (s *stubAvatarService) Upload(_ context.Context, _ domain.Actor, in ports.AvatarUpload) (string, error) {
	s.got = in
	b, _ := io.ReadAll(in.Content)
	s.body = b
	return s.ref, s.err
}
