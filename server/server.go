package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"

	"github.com/noisersup/files-manager-api/auth"
	"github.com/noisersup/files-manager-api/logger"
	"github.com/noisersup/files-manager-api/models"
	"github.com/noisersup/files-manager-api/storage"
)

// Header carrying the opaque session token on authenticated requests.
const tokenHeader = "X-Token"

// Server is a structure responsible for handling all http requests.
type Server struct {
	l     *logger.Logger
	db    models.Database
	cache models.Cache
	auth  *auth.Auth
	files *storage.Storage
}

func InitServer(l *logger.Logger, db models.Database, cache models.Cache, files *storage.Storage, port string) error {
	s := Server{l, db, cache, auth.InitAuth(db, cache), files}

	l.Log("Waiting for connection on port: :%s...", port)
	return http.ListenAndServe(fmt.Sprintf(":%s", port), s.routes())
}

// Dispatch table. First entry matching both path and method wins.
func (s *Server) routes() http.HandlerFunc {
	handlers := []struct {
		regex   *regexp.Regexp
		methods []string
		handle  func(w http.ResponseWriter, r *http.Request, paths []string) // paths are regex captures (here: the file id)
	}{
		{regexp.MustCompile(`^/status$`), []string{"GET"}, s.status},
		{regexp.MustCompile(`^/stats$`), []string{"GET"}, s.stats},
		{regexp.MustCompile(`^/connect$`), []string{"GET"}, s.connect},
		{regexp.MustCompile(`^/disconnect$`), []string{"GET"}, s.disconnect},
		{regexp.MustCompile(`^/users$`), []string{"POST"}, s.newUser},
		{regexp.MustCompile(`^/users/me$`), []string{"GET"}, s.getMe},
		{regexp.MustCompile(`^/files$`), []string{"POST"}, s.uploadFile},
		{regexp.MustCompile(`^/files$`), []string{"GET"}, s.listFiles},
		{regexp.MustCompile(`^/files/([^/]+)$`), []string{"GET"}, s.getFile},
		{regexp.MustCompile(`^/files/([^/]+)/publish$`), []string{"PUT"}, s.publishFile},
		{regexp.MustCompile(`^/files/([^/]+)/unpublish$`), []string{"PUT"}, s.unpublishFile},
		{regexp.MustCompile(`^/files/([^/]+)/data$`), []string{"GET"}, s.fileData},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		for _, handler := range handlers {
			match := handler.regex.FindStringSubmatch(r.URL.Path)
			if match == nil {
				continue
			}
			for _, allowed := range handler.methods {
				if r.Method == allowed {
					handler.handle(w, r, match[1:])
					return
				}
			}
		}
		s.l.SWarn("routes", "Cannot handle request: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	}
}

// Handler function for GET /status.
// Reports liveness of both backing stores
func (s *Server) status(w http.ResponseWriter, r *http.Request, _ []string) {
	writeResponse(w, StatusResponse{Redis: s.cache.Ping(), Db: s.db.Ping()}, http.StatusOK)
}

// Handler function for GET /stats.
// Reports how many users and files the database holds
func (s *Server) stats(w http.ResponseWriter, r *http.Request, _ []string) {
	users, err := s.db.CountUsers()
	if err != nil {
		s.l.SErr("stats", err.Error())
		serverError(w)
		return
	}
	files, err := s.db.CountFiles()
	if err != nil {
		s.l.SErr("stats", err.Error())
		serverError(w)
		return
	}
	writeResponse(w, StatsResponse{Users: users, Files: files}, http.StatusOK)
}

func writeResponse(w http.ResponseWriter, response interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("JSON encoding error: %s", err)
	}
}

func serverError(w http.ResponseWriter) {
	errResponse(w, http.StatusInternalServerError, "Server error")
}

func errResponse(w http.ResponseWriter, status int, msg string) {
	writeResponse(w, ErrResponse{Error: msg}, status)
}
