package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/resumeforge/resume-maker/internal/ingest"
	"github.com/resumeforge/resume-maker/internal/queue"
	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/resume"
	"github.com/resumeforge/resume-maker/internal/schemas"
	"github.com/resumeforge/resume-maker/internal/server/middleware"
	"github.com/resumeforge/resume-maker/internal/types"
)

// CreateResumeJSONRequest is the body for POST /resumes/json.
type CreateResumeJSONRequest struct {
	TemplateID string         `json:"template_id" validate:"omitempty,oneof=classic modern minimal compact"`
	Data       types.Sections `json:"data"`
}

// UpdateResumeRequest is the body for PATCH /resumes/{id}. Both fields are
// optional; absent fields are left unchanged.
type UpdateResumeRequest struct {
	TemplateID string          `json:"template_id" validate:"omitempty,oneof=classic modern minimal compact"`
	Data       *types.Sections `json:"data"`
}

// pathResumeID parses the {id} path segment as a UUID.
func pathResumeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a valid UUID"}
	}
	return id, nil
}

// requestUserID returns the authenticated user, or an error if the
// middleware did not run.
func requestUserID(r *http.Request) (uuid.UUID, error) {
	return middleware.GetUserID(r)
}

// handleUploadResume accepts a multipart resume file, stores the original,
// and kicks off parsing.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "file uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "file", Message: "file field is required"})
		return
	}
	defer file.Close()

	templateID := r.FormValue("template_id")
	if templateID == "" {
		templateID = render.DefaultTemplateID
	}
	if !render.IsValidTemplate(templateID) {
		s.handleError(w, &render.ErrUnknownTemplate{TemplateID: templateID})
		return
	}

	mime := detectMime(header)
	if !ingest.SupportedMime(mime) {
		s.handleError(w, &ingest.ErrUnsupportedFileType{Mime: mime})
		return
	}

	data, err := ingest.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file: "+err.Error())
		return
	}
	if len(data) == 0 {
		s.handleError(w, &ErrValidation{Field: "file", Message: "uploaded file is empty"})
		return
	}

	res := &types.Resume{
		UserID:           userID,
		Status:           types.StatusUploaded,
		OriginalFilename: header.Filename,
		FileSize:         int64(len(data)),
		TemplateID:       templateID,
		// The object key is an opaque name; the row id is DB-generated later.
		StorageKey: fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename)),
	}

	if err := s.store.Upload(r.Context(), res.StorageKey, mime, data); err != nil {
		log.Printf("Upload failed for %s: %v", res.StorageKey, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	if err := s.db.CreateResume(r.Context(), res); err != nil {
		log.Printf("Failed to create resume for user %s: %v", userID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to create resume")
		return
	}

	if err := s.db.UpdateStatus(r.Context(), res.ID, types.StatusUploaded, types.StatusParsing); err != nil {
		log.Printf("Failed to move resume %s to PARSING: %v", res.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to schedule parsing")
		return
	}
	res.Status = types.StatusParsing

	s.scheduleParse(queue.ParseJob{
		ResumeID:   res.ID,
		UserID:     userID,
		StorageKey: res.StorageKey,
		MimeType:   mime,
	})

	s.jsonResponse(w, http.StatusAccepted, res)
}

// scheduleParse publishes a parse job, or runs the parse inline when no
// queue is configured.
func (s *Server) scheduleParse(job queue.ParseJob) {
	if s.queue != nil {
		err := s.queue.PublishParseJob(job)
		if err == nil {
			return
		}
		log.Printf("Failed to publish parse job for %s, parsing inline: %v", job.ResumeID, err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.processor.Process(ctx, job.ResumeID, job.StorageKey, job.MimeType); err != nil {
			log.Printf("Inline parse failed for %s: %v", job.ResumeID, err)
		}
	}()
}

// handleCreateResumeJSON creates a resume directly from structured data.
// It is born PARSED since there is nothing to extract.
func (s *Server) handleCreateResumeJSON(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateResumeJSONRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.handleError(w, &ErrValidation{Field: "template_id", Message: err.Error()})
		return
	}
	if err := validateSections(&req.Data); err != nil {
		s.handleError(w, err)
		return
	}

	res := &types.Resume{
		UserID:     userID,
		Status:     types.StatusParsed,
		TemplateID: req.TemplateID,
		Data:       req.Data,
	}
	resume.Normalize(res)

	if err := s.db.CreateResume(r.Context(), res); err != nil {
		log.Printf("Failed to create resume for user %s: %v", userID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to create resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, res)
}

// handleListResumes lists the caller's resumes, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.handleError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
	}

	resumes, err := s.db.ListResumes(r.Context(), userID, limit)
	if err != nil {
		log.Printf("Failed to list resumes for %s: %v", userID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": resumes, "count": len(resumes)})
}

// handleGetResume returns one resume owned by the caller.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleUpdateResume updates the template choice and/or the structured data.
// A data update invalidates any cached score.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.handleError(w, &ErrValidation{Field: "template_id", Message: err.Error()})
		return
	}
	if req.TemplateID == "" && req.Data == nil {
		s.handleError(w, &ErrValidation{Field: "body", Message: "nothing to update"})
		return
	}

	if req.TemplateID != "" {
		if err := s.db.SetTemplate(r.Context(), res.ID, req.TemplateID); err != nil {
			log.Printf("Failed to set template for %s: %v", res.ID, err)
			s.errorResponse(w, http.StatusInternalServerError, "failed to update resume")
			return
		}
		res.TemplateID = req.TemplateID
	}

	if req.Data != nil {
		if err := validateSections(req.Data); err != nil {
			s.handleError(w, err)
			return
		}
		res.Data = *req.Data
		resume.Normalize(res)

		if err := s.db.UpdateResumeData(r.Context(), res.ID, &res.Data, res.RawText); err != nil {
			log.Printf("Failed to update data for %s: %v", res.ID, err)
			s.errorResponse(w, http.StatusInternalServerError, "failed to update resume")
			return
		}
		s.invalidateScore(r, res.ID)
	}

	s.jsonResponse(w, http.StatusOK, res)
}

// handleDeleteResume deletes a resume, its stored file, and its cached score.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if res.StorageKey != "" && s.store != nil {
		if err := s.store.Delete(r.Context(), res.StorageKey); err != nil {
			// The DB row is the source of truth; an orphaned object is
			// logged rather than blocking the delete.
			log.Printf("Failed to delete stored file %s: %v", res.StorageKey, err)
		}
	}
	s.invalidateScore(r, res.ID)

	if err := s.db.DeleteResume(r.Context(), res.UserID, res.ID); err != nil {
		s.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadFile streams back the originally uploaded file.
func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if res.StorageKey == "" || s.store == nil {
		s.handleError(w, &ErrNoFile{})
		return
	}

	data, contentType, err := s.store.Download(r.Context(), res.StorageKey)
	if err != nil {
		log.Printf("Failed to download %s: %v", res.StorageKey, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch file")
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", res.OriginalFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write file response: %v", err)
	}
}

// handleReparse re-runs text extraction and structuring on the stored file.
// Allowed from PARSED or SCORED; a resume created from JSON has no file to
// reparse.
func (s *Server) handleReparse(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if res.StorageKey == "" || s.store == nil {
		s.handleError(w, &ErrNoFile{})
		return
	}
	if !resume.CanTransition(res.Status, types.StatusParsing) {
		s.handleError(w, &resume.ErrInvalidTransition{From: res.Status, To: types.StatusParsing})
		return
	}

	if err := s.db.UpdateStatus(r.Context(), res.ID, res.Status, types.StatusParsing); err != nil {
		s.handleError(w, err)
		return
	}
	res.Status = types.StatusParsing
	s.invalidateScore(r, res.ID)

	s.scheduleParse(queue.ParseJob{
		ResumeID:   res.ID,
		UserID:     res.UserID,
		StorageKey: res.StorageKey,
		MimeType:   "",
	})

	s.jsonResponse(w, http.StatusAccepted, res)
}

// ownedResume loads the resume in the path, scoped to the caller.
func (s *Server) ownedResume(r *http.Request) (*types.Resume, error) {
	userID, err := requestUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathResumeID(r)
	if err != nil {
		return nil, err
	}
	return s.db.GetResume(r.Context(), userID, id)
}

// invalidateScore drops the cached score for a resume, if caching is on.
func (s *Server) invalidateScore(r *http.Request, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(r.Context(), id); err != nil {
		log.Printf("Failed to invalidate cached score for %s: %v", id, err)
	}
}

// validateSections checks structured data against the resume JSON schema.
func validateSections(data *types.Sections) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return &ErrValidation{Field: "data", Message: err.Error()}
	}
	return schemas.ValidateResumeSections(raw)
}

// detectMime determines the upload's MIME type from the part header,
// falling back to the file extension.
func detectMime(header *multipart.FileHeader) string {
	mime := header.Header.Get("Content-Type")
	if mime != "" && mime != "application/octet-stream" {
		return mime
	}
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".pdf":
		return ingest.MimePDF
	case ".docx":
		return ingest.MimeDocx
	case ".txt":
		return ingest.MimeText
	default:
		return mime
	}
}
