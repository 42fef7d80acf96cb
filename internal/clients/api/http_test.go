package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/standoff/internal/common/sessiontoken"
	uuidMocks "github.com/KirkDiggler/standoff/internal/common/uuid/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type recordedRequest struct {
	method  string
	path    string
	headers http.Header
	cookie  string
	body    []byte
}

type HTTPClientTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockUUID *uuidMocks.MockUUID
	server   *httptest.Server
	handler  http.HandlerFunc
	received *recordedRequest
	client   Client
	ctx      context.Context
}

func TestHTTPClientTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPClientTestSuite))
}

func (s *HTTPClientTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockUUID.EXPECT().NewUUID().Return("test-request-id").AnyTimes()
	s.ctx = context.Background()
	s.received = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec := &recordedRequest{
			method:  r.Method,
			path:    r.URL.Path,
			headers: r.Header.Clone(),
			body:    body,
		}
		if c, err := r.Cookie(sessiontoken.CookieName); err == nil {
			rec.cookie = c.Value
		}
		s.received = rec
		s.handler(w, r)
	}))

	client, err := NewHTTP(&Config{
		BaseURL:       s.server.URL + "/",
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *HTTPClientTestSuite) TearDownTest() {
	s.server.Close()
	s.mockCtrl.Finish()
}

func (s *HTTPClientTestSuite) TestPostSendsJSONAndDecodesBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: sessiontoken.CookieName, Value: "new-token"})
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1, "players": [{"id": 2, "name": "Ann"}]}`))
	}

	resp, err := s.client.Post(s.ctx, &PostInput{
		Endpoint: "game",
		Payload: map[string]any{
			"player": map[string]any{"name": "Ann"},
			"game":   map[string]any{"secsPerRound": 30.0},
		},
	})
	s.Require().NoError(err)

	s.Equal(http.MethodPost, s.received.method)
	s.Equal("/game", s.received.path)
	s.Equal("application/json", s.received.headers.Get("Content-Type"))
	s.Equal("test-request-id", s.received.headers.Get(RequestIDHeader))
	s.JSONEq(`{"player":{"name":"Ann"},"game":{"secsPerRound":30}}`, string(s.received.body))

	s.Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("new-token", resp.SessionToken)
	s.Equal(map[string]any{
		"id": json.Number("1"),
		"players": []any{
			map[string]any{"id": json.Number("2"), "name": "Ann"},
		},
	}, resp.Body)
}

func (s *HTTPClientTestSuite) TestGetSendsSessionCookie() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}

	resp, err := s.client.Get(s.ctx, &GetInput{
		Endpoint:     "/game/round",
		SessionToken: "stored-token",
	})
	s.Require().NoError(err)

	s.Equal(http.MethodGet, s.received.method)
	s.Equal("/game/round", s.received.path)
	s.Equal("stored-token", s.received.cookie)
	s.Empty(s.received.body)
	s.Nil(resp.Body)
	s.Empty(resp.SessionToken)
}

func (s *HTTPClientTestSuite) TestEmptyBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	resp, err := s.client.Get(s.ctx, &GetInput{Endpoint: "game"})
	s.Require().NoError(err)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Nil(resp.Body)
}

func (s *HTTPClientTestSuite) TestNon2xxStatus() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Unauthorized"}`))
	}

	_, err := s.client.Get(s.ctx, &GetInput{Endpoint: "game"})
	s.Require().Error(err)

	var statusErr *StatusError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusUnauthorized, statusErr.StatusCode)
	s.JSONEq(`{"detail":"Unauthorized"}`, string(statusErr.Body))
}

func (s *HTTPClientTestSuite) TestInvalidJSONBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	}

	_, err := s.client.Get(s.ctx, &GetInput{Endpoint: "game"})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to unmarshal response")
}

func (s *HTTPClientTestSuite) TestServerUnreachable() {
	s.server.Close()

	_, err := s.client.Post(s.ctx, &PostInput{Endpoint: "game", Payload: map[string]any{}})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to execute request")
}

func (s *HTTPClientTestSuite) TestEmptyEndpoint() {
	_, err := s.client.Post(s.ctx, &PostInput{})
	s.Equal(ErrEmptyEndpoint, err)

	_, err = s.client.Get(s.ctx, nil)
	s.Equal(ErrEmptyEndpoint, err)
}

func TestNewHTTP_BaseURL(t *testing.T) {
	for _, baseURL := range []string{"localhost:8000", "ftp://example.com", "http://"} {
		_, err := NewHTTP(&Config{BaseURL: baseURL})
		if err != ErrBadBaseURL {
			t.Errorf("NewHTTP(%q) error = %v, want %v", baseURL, err, ErrBadBaseURL)
		}
	}

	client, err := NewHTTP(nil)
	if err != nil {
		t.Fatalf("NewHTTP(nil) error = %v", err)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
}
