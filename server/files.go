package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/noisersup/files-manager-api/auth"
	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/models"
)

// Looks up a record by its raw id, scoped to the caller. A malformed
// id and a missing (or foreign) record collapse into the same
// FileNotFound so the response never leaks whether the id exists.
func (s *Server) lookupOwned(rawId string, userId uuid.UUID) (*models.File, error) {
	id, err := uuid.Parse(rawId)
	if err != nil {
		return nil, database.FileNotFound
	}
	return s.db.GetFile(id, userId)
}

// Maps the "0"/empty sentinel and uuid parent values of the wire
// format onto the database representation
func parseParent(raw string) (uuid.UUID, error) {
	if raw == "" || raw == "0" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

// Handler function for POST /files.
// Validates the upload, writes content to blob storage for
// non-folders and persists the metadata record
func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request, _ []string) {
	userId, err := s.caller(r)
	if err != nil {
		s.authFailed(w, "uploadFile", err)
		return
	}

	req := uploadRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.l.SWarn("uploadFile", "malformed body: %s", err.Error())
	}

	// fail fast, first failing check wins
	if req.Name == "" {
		errResponse(w, http.StatusBadRequest, "Missing name")
		return
	}
	if req.Type != models.TypeFolder && req.Type != models.TypeFile && req.Type != models.TypeImage {
		errResponse(w, http.StatusBadRequest, "Missing type")
		return
	}
	if req.Type != models.TypeFolder && req.Data == "" {
		errResponse(w, http.StatusBadRequest, "Missing data")
		return
	}

	parentId, err := parseParent(req.ParentId)
	if err != nil {
		errResponse(w, http.StatusBadRequest, "Parent not found")
		return
	}
	if parentId != uuid.Nil {
		parent, err := s.db.FindFile(parentId)
		if err != nil {
			if errors.Is(err, database.FileNotFound) {
				errResponse(w, http.StatusBadRequest, "Parent not found")
				return
			}
			s.l.SErr("uploadFile", err.Error())
			serverError(w)
			return
		}
		// type is checked before ownership: a non-folder parent is
		// reported as such no matter who owns it
		if parent.Type != models.TypeFolder {
			errResponse(w, http.StatusBadRequest, "Parent is not a folder")
			return
		}
		if parent.UserId != userId {
			errResponse(w, http.StatusBadRequest, "Parent not found")
			return
		}
	}

	file := models.File{
		UserId:   userId,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentId: parentId,
	}

	if req.Type != models.TypeFolder {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			errResponse(w, http.StatusBadRequest, "Missing data")
			return
		}

		// blob bytes land on disk before the metadata insert; the
		// insert is the commit point
		file.LocalPath, err = s.files.Save(data)
		if err != nil {
			s.l.SErr("uploadFile", err.Error())
			serverError(w)
			return
		}
	}

	created, err := s.db.NewFile(file)
	if err != nil {
		if file.LocalPath != "" {
			if rmErr := s.files.Remove(file.LocalPath); rmErr != nil {
				s.l.SWarn("uploadFile", "orphan blob %s: %s", file.LocalPath, rmErr.Error())
			}
		}
		s.l.SErr("uploadFile", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, fileResponse(created), http.StatusCreated)
}

// Handler function for GET /files/:id.
// Returns a single record owned by the caller
func (s *Server) getFile(w http.ResponseWriter, r *http.Request, paths []string) {
	userId, err := s.caller(r)
	if err != nil {
		s.authFailed(w, "getFile", err)
		return
	}

	file, err := s.lookupOwned(paths[0], userId)
	if err != nil {
		if errors.Is(err, database.FileNotFound) {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
		s.l.SErr("getFile", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, fileResponse(file), http.StatusOK)
}

// Handler function for GET /files.
// Lists the caller's records under ?parentId, windowed by ?page
func (s *Server) listFiles(w http.ResponseWriter, r *http.Request, _ []string) {
	userId, err := s.caller(r)
	if err != nil {
		s.authFailed(w, "listFiles", err)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	parentId, err := parseParent(r.URL.Query().Get("parentId"))
	if err != nil {
		// an unparsable parent matches nothing
		writeResponse(w, []FileResponse{}, http.StatusOK)
		return
	}

	files, err := s.db.ListFiles(userId, parentId, page)
	if err != nil {
		s.l.SErr("listFiles", err.Error())
		serverError(w)
		return
	}

	out := []FileResponse{}
	for i := range files {
		out = append(out, fileResponse(&files[i]))
	}
	writeResponse(w, out, http.StatusOK)
}

// Handler function for PUT /files/:id/publish
func (s *Server) publishFile(w http.ResponseWriter, r *http.Request, paths []string) {
	s.setPublic(w, r, paths[0], true)
}

// Handler function for PUT /files/:id/unpublish
func (s *Server) unpublishFile(w http.ResponseWriter, r *http.Request, paths []string) {
	s.setPublic(w, r, paths[0], false)
}

// Both publish and unpublish are the same owned-record update
// parameterized by the flag value
func (s *Server) setPublic(w http.ResponseWriter, r *http.Request, rawId string, public bool) {
	userId, err := s.caller(r)
	if err != nil {
		s.authFailed(w, "setPublic", err)
		return
	}

	id, err := uuid.Parse(rawId)
	if err != nil {
		errResponse(w, http.StatusNotFound, "Not found")
		return
	}

	file, err := s.db.SetPublic(id, userId, public)
	if err != nil {
		if errors.Is(err, database.FileNotFound) {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
		s.l.SErr("setPublic", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, fileResponse(file), http.StatusOK)
}

// Handler function for GET /files/:id/data.
// Serves blob content to the owner, or to anyone once published
func (s *Server) fileData(w http.ResponseWriter, r *http.Request, paths []string) {
	id, err := uuid.Parse(paths[0])
	if err != nil {
		errResponse(w, http.StatusNotFound, "Not found")
		return
	}

	file, err := s.db.FindFile(id)
	if err != nil {
		if errors.Is(err, database.FileNotFound) {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
		s.l.SErr("fileData", err.Error())
		serverError(w)
		return
	}

	if !file.IsPublic {
		userId, err := s.caller(r)
		if err != nil && !errors.Is(err, auth.Unauthorized) {
			s.l.SErr("fileData", err.Error())
			serverError(w)
			return
		}
		// private records look exactly like missing ones
		if err != nil || userId != file.UserId {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
	}

	if file.Type == models.TypeFolder {
		errResponse(w, http.StatusBadRequest, "A folder doesn't have data")
		return
	}

	data, err := s.files.Read(file.LocalPath)
	if err != nil {
		if os.IsNotExist(err) {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
		s.l.SErr("fileData", err.Error())
		serverError(w)
		return
	}

	if ctype := mime.TypeByExtension(filepath.Ext(file.Name)); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	w.Write(data)
}
