package server

import (
	"github.com/google/uuid"

	"github.com/noisersup/files-manager-api/models"
)

// REQUESTS

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentId string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"` // base64 content, absent for folders
}

// RESPONSES

type ErrResponse struct {
	Error string `json:"error"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type StatusResponse struct {
	Redis bool `json:"redis"`
	Db    bool `json:"db"`
}

type StatsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

type FileResponse struct {
	Id        string `json:"id"`
	UserId    string `json:"userId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsPublic  bool   `json:"isPublic"`
	ParentId  string `json:"parentId"`
	LocalPath string `json:"localPath,omitempty"`
}

// The root parent renders as "0" on the wire,
// everything else as a plain uuid.
func fileResponse(f *models.File) FileResponse {
	parent := "0"
	if f.ParentId != uuid.Nil {
		parent = f.ParentId.String()
	}
	return FileResponse{
		Id:        f.Id.String(),
		UserId:    f.UserId.String(),
		Name:      f.Name,
		Type:      f.Type,
		IsPublic:  f.IsPublic,
		ParentId:  parent,
		LocalPath: f.LocalPath,
	}
}
