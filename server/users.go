package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/noisersup/files-manager-api/auth"
	"github.com/noisersup/files-manager-api/database"
)

// caller resolves the session token header to the id of the
// user behind the request.
func (s *Server) caller(r *http.Request) (uuid.UUID, error) {
	return s.auth.Authorize(r.Header.Get(tokenHeader))
}

// Maps an auth failure onto the response: credential problems are a
// plain 401, everything else is a store failure worth logging.
func (s *Server) authFailed(w http.ResponseWriter, scope string, err error) {
	if errors.Is(err, auth.Unauthorized) {
		errResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.l.SErr(scope, err.Error())
	serverError(w)
}

// Handler function for POST /users.
// Registers a new user from a json body {email, password}
func (s *Server) newUser(w http.ResponseWriter, r *http.Request, _ []string) {
	req := credentialsRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.l.SWarn("newUser", "malformed body: %s", err.Error())
	}

	if req.Email == "" {
		errResponse(w, http.StatusBadRequest, "Missing email")
		return
	}
	if req.Password == "" {
		errResponse(w, http.StatusBadRequest, "Missing password")
		return
	}

	user, err := s.db.NewUser(req.Email, database.HashPassword(req.Password))
	if err != nil {
		if errors.Is(err, database.UserExists) {
			errResponse(w, http.StatusBadRequest, "Already exist")
			return
		}
		s.l.SErr("newUser", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, UserResponse{Id: user.Id.String(), Email: user.Email}, http.StatusCreated)
}

// Handler function for GET /users/me.
// Returns the user behind the session token
func (s *Server) getMe(w http.ResponseWriter, r *http.Request, _ []string) {
	userId, err := s.caller(r)
	if err != nil {
		s.authFailed(w, "getMe", err)
		return
	}

	user, err := s.db.GetUser(userId)
	if err != nil {
		// a live session pointing at a removed user is still a 401
		if errors.Is(err, database.UserNotFound) {
			errResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		s.l.SErr("getMe", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, UserResponse{Id: user.Id.String(), Email: user.Email}, http.StatusOK)
}

// Handler function for GET /connect.
// Trades Basic credentials for a fresh session token
func (s *Server) connect(w http.ResponseWriter, r *http.Request, _ []string) {
	email, password, ok := r.BasicAuth()
	if !ok {
		errResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.auth.SignIn(email, password)
	if err != nil {
		s.authFailed(w, "connect", err)
		return
	}

	writeResponse(w, TokenResponse{Token: token}, http.StatusOK)
}

// Handler function for GET /disconnect.
// Kills the session behind the token header
func (s *Server) disconnect(w http.ResponseWriter, r *http.Request, _ []string) {
	if err := s.auth.SignOut(r.Header.Get(tokenHeader)); err != nil {
		s.authFailed(w, "disconnect", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
