// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/accounts/internal/platform/request"
	"github.com/taibuivan/accounts/internal/platform/respond"
)

// # Definitions & Constructors

// SessionTransport binds session tokens to responses.
type SessionTransport interface {
	Attach(writer http.ResponseWriter, token string)
	Clear(writer http.ResponseWriter)
}

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// Registration, login and logout. None of them require a session.
type Handler struct {
	authService *Service
	transport   SessionTransport
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, transport SessionTransport) *Handler {
	return &Handler{authService: service, transport: transport}
}

// Routes registers the public authentication endpoints on router.
//
// # Endpoints
//   - POST /       : Creates a new account and starts a session.
//   - POST /auth   : Authenticates and starts a session.
//   - POST /logout : Drops the session cookie.
func (handler *Handler) Routes(router chi.Router) {
	router.Post("/", handler.register)
	router.Post("/auth", handler.login)
	router.Post("/logout", handler.logout)
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/users/

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: PublicUser, session cookie set
  - 400: VALIDATION_ERROR or CONFLICT (email already registered)
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.transport.Attach(writer, session.Token)
	respond.Created(writer, session.User.Public())
}

/*
Login authenticates a user and establishes a session.

POST /api/users/auth

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 201: PublicUser, session cookie set
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED (generic invalid credentials)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.transport.Attach(writer, session.Token)
	respond.Created(writer, session.User.Public())
}

/*
Logout terminates the current user session.

POST /api/users/logout

Description: Clears the session cookie. The token itself stays valid until
it expires; the client simply no longer holds it.

Response:
  - 200: {message}
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.transport.Clear(writer)
	respond.Message(writer, MessageLoggedOut)
}
