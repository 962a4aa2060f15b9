package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and queue connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Setup endpoint (no auth required, one-time use)

// handleSetup godoc
// @Summary      Initial setup
// @Description  Create the initial admin user. This endpoint can only be called once when no users exist.
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      driving.SetupRequest  true  "Admin user details"
// @Success      201      {object}  driving.SetupResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Setup already complete"
// @Failure      500      {object}  ErrorResponse  "Setup failed"
// @Router       /setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req driving.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.userService.Setup(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case domain.ErrForbidden:
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleListUsers godoc
// @Summary      List all users
// @Description  Get a list of all users in the office (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	summaries := make([]*domain.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = u.ToSummary()
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleCreateUser godoc
// @Summary      Create user
// @Description  Create a new clerk or admin account (admin only)
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.CreateUserRequest  true  "User details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      409      {object}  ErrorResponse  "User already exists"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Create(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrAlreadyExists:
			writeError(w, http.StatusConflict, "user already exists")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user.ToSummary())
}

// handleUpdateUser godoc
// @Summary      Update user
// @Description  Update a user's name, role, or active flag (admin only)
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "User ID"
// @Param        request  body      driving.UpdateUserRequest  true  "Fields to update"
// @Success      200      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404      {object}  ErrorResponse  "User not found"
// @Router       /users/{id} [put]
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	var req driving.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Update(r.Context(), id, req)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleDeleteUser godoc
// @Summary      Delete user
// @Description  Delete a user by ID (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse  "Missing user ID"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Template endpoints

// handleListTemplates godoc
// @Summary      List templates
// @Description  Get summaries of all uploaded form templates
// @Tags         Templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.TemplateSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /templates [get]
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templateService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

// handleGetTemplate godoc
// @Summary      Get template
// @Description  Download the raw bytes of a template revision
// @Tags         Templates
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  ErrorResponse  "Template not found"
// @Router       /templates/{id} [get]
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	template, err := s.templateService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Template-Revision", strconv.Itoa(template.Revision))
	_, _ = w.Write(template.Data)
}

// handleUploadTemplate godoc
// @Summary      Upload template
// @Description  Store a new revision of a form template. The request body is the raw template file.
// @Tags         Templates
// @Accept       application/pdf
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Template ID"
// @Param        name  query     string  false  "Human-readable template name"
// @Success      201   {object}  domain.TemplateSummary
// @Failure      400   {object}  ErrorResponse  "Invalid input"
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      403   {object}  ErrorResponse  "Forbidden - admin only"
// @Router       /templates/{id} [put]
func (s *Server) handleUploadTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := r.URL.Query().Get("name")
	if name == "" {
		name = id
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read template body")
		return
	}

	template, err := s.templateService.Upload(r.Context(), id, name, data)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "template id, name, and data are required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to upload template")
		}
		return
	}

	writeJSON(w, http.StatusCreated, template.ToSummary())
}

// handleDeleteTemplate godoc
// @Summary      Delete template
// @Description  Remove a template and its cached bytes (admin only)
// @Tags         Templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Template not found"
// @Router       /templates/{id} [delete]
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.templateService.Delete(r.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "template not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete template")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Case endpoints

// handleCreateCase godoc
// @Summary      Create case
// @Description  Open a new draft accident case with an initial snapshot
// @Tags         Cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.CreateCaseRequest  true  "Template ID and snapshot"
// @Success      201      {object}  domain.Case
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      404      {object}  ErrorResponse  "Template not found"
// @Router       /cases [post]
func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.caseService.Create(r.Context(), authCtx.OfficeID, req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "template id is required")
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "template not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create case")
		}
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// handleListCases godoc
// @Summary      List cases
// @Description  Get case summaries for the caller's office, newest first
// @Tags         Cases
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {array}   domain.CaseSummary
// @Failure      401     {object}  ErrorResponse  "Unauthorized"
// @Router       /cases [get]
func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	cases, err := s.caseService.List(r.Context(), authCtx.OfficeID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cases")
		return
	}

	writeJSON(w, http.StatusOK, cases)
}

// handleGetCase godoc
// @Summary      Get case
// @Description  Get a case with its full snapshot
// @Tags         Cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  domain.Case
// @Failure      404  {object}  ErrorResponse  "Case not found"
// @Router       /cases/{id} [get]
func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	c, err := s.caseService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// handleUpdateCase godoc
// @Summary      Update case
// @Description  Replace the snapshot of a draft case
// @Tags         Cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Case ID"
// @Param        request  body      domain.UpdateCaseRequest  true  "New snapshot"
// @Success      200      {object}  domain.Case
// @Failure      404      {object}  ErrorResponse  "Case not found"
// @Failure      409      {object}  ErrorResponse  "Case is not a draft"
// @Router       /cases/{id} [put]
func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req domain.UpdateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.caseService.Update(r.Context(), id, req)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "case not found")
		case domain.ErrCaseNotDraft:
			writeError(w, http.StatusConflict, "case is not a draft")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update case")
		}
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// handleDeleteCase godoc
// @Summary      Delete case
// @Description  Remove a case and its transcription runs
// @Tags         Cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Case not found"
// @Router       /cases/{id} [delete]
func (s *Server) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.caseService.Delete(r.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "case not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete case")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSubmitCase godoc
// @Summary      Submit case
// @Description  Move a draft case to submitted so it can be transcribed
// @Tags         Cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  domain.Case
// @Failure      404  {object}  ErrorResponse  "Case not found"
// @Failure      409  {object}  ErrorResponse  "Case is not a draft"
// @Router       /cases/{id}/submit [post]
func (s *Server) handleSubmitCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	c, err := s.caseService.Submit(r.Context(), id)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "case not found")
		case domain.ErrCaseNotDraft:
			writeError(w, http.StatusConflict, "case is not a draft")
		default:
			writeError(w, http.StatusInternalServerError, "failed to submit case")
		}
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Transcription endpoints

// handleTranscribe godoc
// @Summary      Transcribe case
// @Description  Run the transcription engine synchronously and return the persisted run with its tally
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  domain.TranscriptionRun
// @Failure      404  {object}  ErrorResponse  "Case or template not found"
// @Failure      422  {object}  ErrorResponse  "Template corrupt"
// @Router       /cases/{id}/transcribe [post]
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	run, err := s.transcriptionService.Transcribe(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "case or template not found")
		case errors.Is(err, domain.ErrTemplateCorrupt):
			writeError(w, http.StatusUnprocessableEntity, "template corrupt")
		default:
			writeError(w, http.StatusInternalServerError, "transcription failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// handleEnqueueTranscription godoc
// @Summary      Enqueue transcription
// @Description  Schedule a background transcription for a case
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      202  {object}  domain.Task
// @Failure      404  {object}  ErrorResponse  "Case not found"
// @Router       /cases/{id}/enqueue [post]
func (s *Server) handleEnqueueTranscription(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := r.PathValue("id")

	task, err := s.transcriptionService.Enqueue(r.Context(), authCtx.OfficeID, id)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "case not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to enqueue transcription")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, task)
}

// handleLatestRun godoc
// @Summary      Latest run
// @Description  Get the most recent transcription run for a case
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  domain.TranscriptionRun
// @Failure      404  {object}  ErrorResponse  "No runs for this case"
// @Router       /cases/{id}/runs/latest [get]
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	run, err := s.transcriptionService.LatestRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "no runs for this case")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// handleDownloadDocument godoc
// @Summary      Download filled document
// @Description  Download the filled form produced by the latest transcription run
// @Tags         Transcription
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      string  true  "Case ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  ErrorResponse  "No runs for this case"
// @Router       /cases/{id}/document [get]
func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	run, err := s.transcriptionService.LatestRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "no runs for this case")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.pdf"`)
	_, _ = w.Write(run.Document)
}

// previewRequest carries an unsaved snapshot for a dry run
// @Description Transcription preview request
type previewRequest struct {
	TemplateID string              `json:"template_id"`
	Snapshot   domain.CaseSnapshot `json:"snapshot"`
}

// handlePreview godoc
// @Summary      Preview transcription
// @Description  Run the engine on an unsaved snapshot without persisting anything. Returns the tally a real run would produce.
// @Tags         Transcription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      previewRequest  true  "Template ID and snapshot"
// @Success      200      {object}  domain.TranscriptionRun
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      404      {object}  ErrorResponse  "Template not found"
// @Router       /preview [post]
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := s.transcriptionService.Preview(r.Context(), &req.Snapshot, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "template not found")
		case errors.Is(err, domain.ErrTemplateCorrupt):
			writeError(w, http.StatusUnprocessableEntity, "template corrupt")
		default:
			writeError(w, http.StatusInternalServerError, "preview failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// handleGetTask godoc
// @Summary      Get task status
// @Description  Check the status of a background task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  ErrorResponse  "Task not found"
// @Router       /tasks/{id} [get]
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	task, err := s.taskQueue.GetTask(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func parseIntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
