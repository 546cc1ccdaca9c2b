package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petermanchester1987/actor-connect/internal/domain"
	"github.com/petermanchester1987/actor-connect/internal/service"
)

// ProfileHandler mantiene dependencias para los endpoints de perfiles.
type ProfileHandler struct {
	logger      *zap.Logger
	profileServ *service.ProfileService
	userServ    *service.UserService
}

func NewProfileHandler(logger *zap.Logger, profileServ *service.ProfileService, userServ *service.UserService) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		profileServ: profileServ,
		userServ:    userServ,
	}
}

// Me maneja GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	profile, err := h.profileServ.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		h.logger.Error("get own profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Upsert maneja POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	var req struct {
		Company      string            `json:"company"`
		Location     string            `json:"location"`
		Website      string            `json:"website"`
		Bio          string            `json:"bio"`
		Status       string            `json:"status"`
		SpotlightPin string            `json:"spotlightpin"`
		Skills       service.SkillList `json:"skills"`
		Youtube      string            `json:"youtube"`
		Twitter      string            `json:"twitter"`
		Instagram    string            `json:"instagram"`
		Linkedin     string            `json:"linkedin"`
		Facebook     string            `json:"facebook"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid upsert profile request", zap.Error(err))
		validationFailed(c, []fieldError{{Msg: "Invalid request body"}})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Status) == "" {
		errs = append(errs, fieldError{Msg: "Status is required"})
	}
	if len(req.Skills) == 0 {
		errs = append(errs, fieldError{Msg: "Skills are required"})
	}
	if len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	profile, err := h.profileServ.Upsert(c.Request.Context(), userID, service.UpsertProfileInput{
		Company:      req.Company,
		Location:     req.Location,
		Website:      req.Website,
		Bio:          req.Bio,
		Status:       req.Status,
		SpotlightPin: req.SpotlightPin,
		Skills:       req.Skills,
		Social: domain.SocialLinks{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
			Facebook:  req.Facebook,
		},
	})
	if err != nil {
		h.logger.Error("upsert profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// List maneja GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetByUserID maneja GET /api/profile/user/:user_id.
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	if uuid.Validate(userID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid ID"})
		return
	}

	profile, err := h.profileServ.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount maneja DELETE /api/profile: baja en cascada de perfil,
// posts y usuario.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	if err := h.userServ.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		h.logger.Error("delete account failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

type experienceRequest struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Director    string `json:"director"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience maneja PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add experience request", zap.Error(err))
		validationFailed(c, []fieldError{{Msg: "Invalid request body"}})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, fieldError{Msg: "Title is required"})
	}
	if strings.TrimSpace(req.Company) == "" {
		errs = append(errs, fieldError{Msg: "Company is required"})
	}
	from, to, dateErrs := parseDateRange(req.From, req.To)
	errs = append(errs, dateErrs...)
	if len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	profile, err := h.profileServ.AddExperience(c.Request.Context(), userID, service.ExperienceInput{
		Title:       req.Title,
		Role:        req.Role,
		Company:     req.Company,
		Director:    req.Director,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.respondProfileMutation(c, err, "add experience")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RemoveExperience maneja DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	profile, err := h.profileServ.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Experience not found"})
			return
		}
		h.respondProfileMutation(c, err, "remove experience")
		return
	}
	c.JSON(http.StatusOK, profile)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation maneja PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add education request", zap.Error(err))
		validationFailed(c, []fieldError{{Msg: "Invalid request body"}})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(req.School) == "" {
		errs = append(errs, fieldError{Msg: "School is required"})
	}
	if strings.TrimSpace(req.Degree) == "" {
		errs = append(errs, fieldError{Msg: "Degree is required"})
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		errs = append(errs, fieldError{Msg: "Field of study is required"})
	}
	from, to, dateErrs := parseDateRange(req.From, req.To)
	errs = append(errs, dateErrs...)
	if len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	profile, err := h.profileServ.AddEducation(c.Request.Context(), userID, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.respondProfileMutation(c, err, "add education")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RemoveEducation maneja DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	profile, err := h.profileServ.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Education not found"})
			return
		}
		h.respondProfileMutation(c, err, "remove education")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) respondProfileMutation(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
	case errors.Is(err, service.ErrInvalidDateRange):
		validationFailed(c, []fieldError{{Msg: "From date is required and needs to be from the past"}})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	}
}

func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, []fieldError) {
	var errs []fieldError
	from, err := parseDate(fromRaw)
	if err != nil {
		errs = append(errs, fieldError{Msg: "From date is required and needs to be from the past"})
	}
	to, err := parseOptionalDate(toRaw)
	if err != nil {
		errs = append(errs, fieldError{Msg: "To date is not valid"})
	}
	if len(errs) > 0 {
		return time.Time{}, nil, errs
	}
	return from, to, nil
}
