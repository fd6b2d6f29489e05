package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	"github.com/LeadConsult/alx-files-manager/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	// Public endpoints.
	r.Post("/users", s.handleRegister)
	r.Get("/connect", s.handleConnect)
	r.Get("/status", s.handleStatus)
	r.Get("/stats", s.handleStats)
	// Content is viewer-gated inside the service, not by the middleware:
	// anonymous viewers can read public files.
	r.Get("/files/{id}/data", s.handleFileData)

	// Token-protected endpoints.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/disconnect", s.handleDisconnect)
		r.Get("/users/me", s.handleMe)

		r.Post("/files", s.handleUpload)
		r.Get("/files", s.handleListFiles)
		r.Get("/files/{id}", s.handleGetFile)
		r.Put("/files/{id}/publish", s.handlePublish)
		r.Put("/files/{id}/unpublish", s.handleUnpublish)
	})

	return r
}

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// fileJSON is the public shape of a file. Content bytes are never echoed;
// they are only reachable through the data endpoint.
type fileJSON struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

func toFileJSON(f *models.File) fileJSON {
	return fileJSON{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Kind,
		IsPublic: f.IsPublic,
		ParentID: f.ParentID,
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (s *HTTPServer) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]string{"error": message})
}

// writeServiceError maps an error class to its status code and canonical
// message. Validation errors keep their detail text; everything else is
// collapsed so internals never leak.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeError(w, http.StatusBadRequest, "Already exist")
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, "Not found")
	default:
		s.writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	s.writeJSON(w, http.StatusCreated, userJSON{ID: user.ID, Email: user.Email})
}

func (s *HTTPServer) handleConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.users.Connect(r.Context(), email, password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *HTTPServer) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Disconnect(r.Context(), r.Header.Get(tokenHeader)); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	s.writeJSON(w, http.StatusOK, userJSON{ID: user.ID, Email: user.Email})
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		ParentID string `json:"parentId"`
		IsPublic bool   `json:"isPublic"`
		Data     string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var data []byte
	if req.Data != "" {
		var err error
		data, err = base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Missing data")
			return
		}
	}

	user := userFromContext(r.Context())
	file, err := s.files.Upload(r.Context(), user.ID, services.UploadInput{
		Name:     req.Name,
		Kind:     req.Type,
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     data,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toFileJSON(file))
}

func (s *HTTPServer) handleGetFile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	file, err := s.files.GetOwned(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toFileJSON(file))
}

func (s *HTTPServer) handleListFiles(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	parentID := r.URL.Query().Get("parentId")
	if parentID == "" {
		parentID = models.RootParentID
	}
	// A non-numeric page counts as the first one.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	files, err := s.files.List(r.Context(), user.ID, parentID, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	out := make([]fileJSON, 0, len(files))
	for _, f := range files {
		out = append(out, toFileJSON(f))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) setPublication(w http.ResponseWriter, r *http.Request, isPublic bool) {
	user := userFromContext(r.Context())

	file, err := s.files.SetPublication(r.Context(), user.ID, chi.URLParam(r, "id"), isPublic)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toFileJSON(file))
}

func (s *HTTPServer) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.setPublication(w, r, true)
}

func (s *HTTPServer) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	s.setPublication(w, r, false)
}

func (s *HTTPServer) handleFileData(w http.ResponseWriter, r *http.Request) {
	// A non-numeric or absent size is 0 and serves the original.
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	data, file, err := s.files.GetContent(r.Context(), s.viewerID(r), chi.URLParam(r, "id"), size)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.stats.Status(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]bool{"redis": st.Redis, "db": st.DB})
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.stats.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"users": st.Users, "files": st.Files})
}
