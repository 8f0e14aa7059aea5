package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smapp/internal/auth"
	"smapp/internal/errors"
	"smapp/internal/model"
	"smapp/internal/service"
)

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest represents a create-or-update profile request. Skills is a
// comma separated list.
type ProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required" msg:"Status is required"`
	Skills         string `json:"skills" validate:"required" msg:"Skills is required."`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
	TikTok         string `json:"tiktok"`
}

// ExperienceRequest represents an experience entry.
type ExperienceRequest struct {
	Title       string `json:"title" validate:"required" msg:"Title is required."`
	Company     string `json:"company" validate:"required" msg:"Company is required."`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required" msg:"From date is required."`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest represents an education entry.
type EducationRequest struct {
	School       string `json:"school" validate:"required" msg:"School is required."`
	Degree       string `json:"degree" validate:"required" msg:"Degree is required."`
	FieldOfStudy string `json:"fieldofstudy" validate:"required" msg:"Field of study is required."`
	From         string `json:"from" validate:"required" msg:"From date is required."`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r ExperienceRequest) toModel() (model.Experience, error) {
	from, err := parseDate("from", r.From)
	if err != nil {
		return model.Experience{}, err
	}
	to, err := parseOptionalDate("to", r.To)
	if err != nil {
		return model.Experience{}, err
	}
	return model.Experience{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        from,
		To:          to,
		Current:     r.Current,
		Description: r.Description,
	}, nil
}

func (r EducationRequest) toModel() (model.Education, error) {
	from, err := parseDate("from", r.From)
	if err != nil {
		return model.Education{}, err
	}
	to, err := parseOptionalDate("to", r.To)
	if err != nil {
		return model.Education{}, err
	}
	return model.Education{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      r.Current,
		Description:  r.Description,
	}, nil
}

// Me godoc
// @Summary Get current user's profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	profile, err := h.profileService.Me(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert godoc
// @Summary Create or update user profile
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ValidationResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.Upsert(c.Request().Context(), auth.UserID(c), service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		YouTube:        req.YouTube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
		TikTok:         req.TikTok,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// List godoc
// @Summary Get all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} model.Profile
// @Failure 500 {object} errors.MessageResponse
// @Router /profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.profileService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// ByUsername godoc
// @Summary Get profile by username
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.MessageResponse
// @Router /profile/{username} [get]
func (h *ProfileHandler) ByUsername(c echo.Context) error {
	profile, err := h.profileService.ByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ByUserID godoc
// @Summary Get profile by user ID
// @Tags profile
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.MessageResponse
// @Router /profile/users/{user_id} [get]
func (h *ProfileHandler) ByUserID(c echo.Context) error {
	profile, err := h.profileService.ByUserID(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteAccount godoc
// @Summary Delete profile, user and posts
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /profile [delete]
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	if err := h.profileService.DeleteAccount(c.Request().Context(), auth.UserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Msg: "User account deleted"})
}

// AddExperience godoc
// @Summary Add profile experience
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ExperienceRequest true "Experience"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ValidationResponse
// @Router /profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	exp, err := h.bindExperience(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.AddExperience(c.Request().Context(), auth.UserID(c), exp)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateExperience godoc
// @Summary Edit profile experience
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param exp_id path string true "Experience ID"
// @Param request body ExperienceRequest true "Experience"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ValidationResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/experience/{exp_id} [put]
func (h *ProfileHandler) UpdateExperience(c echo.Context) error {
	exp, err := h.bindExperience(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.UpdateExperience(c.Request().Context(), auth.UserID(c), c.Param("exp_id"), exp)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteExperience godoc
// @Summary Delete experience from profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param exp_id path string true "Experience ID"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) DeleteExperience(c echo.Context) error {
	profile, err := h.profileService.DeleteExperience(c.Request().Context(), auth.UserID(c), c.Param("exp_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// AddEducation godoc
// @Summary Add profile education
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body EducationRequest true "Education"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ValidationResponse
// @Router /profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	edu, err := h.bindEducation(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.AddEducation(c.Request().Context(), auth.UserID(c), edu)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateEducation godoc
// @Summary Edit profile education
// @Tags profile
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param edu_id path string true "Education ID"
// @Param request body EducationRequest true "Education"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ValidationResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/education/{edu_id} [put]
func (h *ProfileHandler) UpdateEducation(c echo.Context) error {
	edu, err := h.bindEducation(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.UpdateEducation(c.Request().Context(), auth.UserID(c), c.Param("edu_id"), edu)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteEducation godoc
// @Summary Delete education from profile
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Param edu_id path string true "Education ID"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/education/{edu_id} [delete]
func (h *ProfileHandler) DeleteEducation(c echo.Context) error {
	profile, err := h.profileService.DeleteEducation(c.Request().Context(), auth.UserID(c), c.Param("edu_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GitHubRepos godoc
// @Summary Get user repos from GitHub
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} github.Repo
// @Failure 404 {object} errors.MessageResponse
// @Router /profile/github/{username} [get]
func (h *ProfileHandler) GitHubRepos(c echo.Context) error {
	repos, err := h.profileService.GitHubRepos(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repos)
}

func (h *ProfileHandler) bindExperience(c echo.Context) (model.Experience, error) {
	var req ExperienceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return model.Experience{}, err
	}
	return req.toModel()
}

func (h *ProfileHandler) bindEducation(c echo.Context) (model.Education, error) {
	var req EducationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return model.Education{}, err
	}
	return req.toModel()
}
