// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/accounts/internal/platform/middleware"
	requestutil "github.com/taibuivan/accounts/internal/platform/request"
	"github.com/taibuivan/accounts/internal/platform/respond"
	"github.com/taibuivan/accounts/internal/users/auth"
)

// Handler implements the HTTP layer for profile and user administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes registers the account endpoints on router.
//
// authenticate is the Authentication Gate; admin routes append the
// Authorization Gate after it.
//
// # Endpoints
//   - GET    /profile : Own profile.
//   - PUT    /profile : Partial profile update.
//   - GET    /        : Every account (admin).
//   - DELETE /{id}    : Remove a non-admin account (admin).
func (handler *Handler) Routes(router chi.Router, authenticate middleware.Stage) {
	router.Group(func(member chi.Router) {
		member.Use(middleware.Pipeline(authenticate))
		member.Get("/profile", handler.getProfile)
		member.Put("/profile", handler.updateProfile)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.Pipeline(authenticate, middleware.RequireAdmin()))
		admin.Get("/", handler.listUsers)
		admin.Delete("/{id}", handler.deleteUser)
	})
}

// # User Profile Endpoints

/*
GET /api/users/profile.

Response:
  - 200: PublicUser
  - 401: UNAUTHORIZED
  - 404: NOT_FOUND (account removed mid-request)
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Public())
}

// updateProfileRequest defines the JSON payload for profile updates.
// Omitted or empty fields are left unchanged.
type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
PUT /api/users/profile.

Request:
  - body: updateProfileRequest (partial JSON)

Response:
  - 200: PublicUser: The updated profile
  - 400: VALIDATION_ERROR or CONFLICT
  - 401: UNAUTHORIZED
  - 404: NOT_FOUND
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), principal.UserID, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Public())
}

// # Administration Endpoints

/*
GET /api/users/.

Response:
  - 200: []PublicUser
  - 401: UNAUTHORIZED or INSUFFICIENT_PRIVILEGE
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, auth.PublicUsers(users))
}

/*
DELETE /api/users/{id}.

Response:
  - 200: {message}
  - 400: CONFLICT (target is an admin)
  - 401: UNAUTHORIZED or INSUFFICIENT_PRIVILEGE
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.DeleteUser(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MessageUserRemoved)
}
