package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/petermanchester1987/actor-connect/internal/domain"
	"github.com/petermanchester1987/actor-connect/internal/repository"
)

// ProfileService coordina el upsert del perfil y las listas de
// experiencia y educación.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
	}
}

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidDateRange = errors.New("from date must precede to date")
)

// SkillList acepta tanto un slice JSON como un string separado por
// comas, que se divide recortando cada entrada y preservando el orden.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = SkillList(splitSkillsString(raw))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = SkillList(splitSkills(list))
	return nil
}

type UpsertProfileInput struct {
	Company      string
	Location     string
	Website      string
	Bio          string
	Status       string
	SpotlightPin string
	Skills       []string
	Social       domain.SocialLinks
}

// Upsert crea o reemplaza el perfil del usuario. La operación es un
// upsert atómico por user_id: dos llamadas concurrentes nunca dejan
// dos perfiles.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input UpsertProfileInput) (domain.Profile, error) {
	profile := domain.Profile{
		ID:           uuid.NewString(),
		UserID:       userID,
		Company:      input.Company,
		Location:     input.Location,
		Website:      normalizeURL(input.Website),
		Bio:          input.Bio,
		Status:       input.Status,
		SpotlightPin: input.SpotlightPin,
		Skills:       splitSkills(input.Skills),
		Social: domain.SocialLinks{
			Youtube:   normalizeURL(input.Social.Youtube),
			Twitter:   normalizeURL(input.Social.Twitter),
			Instagram: normalizeURL(input.Social.Instagram),
			Linkedin:  normalizeURL(input.Social.Linkedin),
			Facebook:  normalizeURL(input.Social.Facebook),
		},
		UpdatedAt: time.Now().UTC(),
	}

	stored, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return domain.Profile{}, err
	}
	return stored, nil
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

type ExperienceInput struct {
	Title       string
	Role        string
	Company     string
	Director    string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience agrega la entrada al frente de la lista (orden
// más-reciente-primero). From debe preceder a To cuando ambos existen.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, input ExperienceInput) (domain.Profile, error) {
	if input.To != nil && !input.From.Before(*input.To) {
		return domain.Profile{}, ErrInvalidDateRange
	}

	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	exp := domain.Experience{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Role:        input.Role,
		Company:     input.Company,
		Director:    input.Director,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	if err := s.profiles.AddExperience(ctx, profile.ID, exp); err != nil {
		return domain.Profile{}, err
	}
	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (domain.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := s.profiles.RemoveExperience(ctx, profile.ID, expID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrEntryNotFound
		}
		return domain.Profile{}, err
	}
	return s.GetByUserID(ctx, userID)
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, input EducationInput) (domain.Profile, error) {
	if input.To != nil && !input.From.Before(*input.To) {
		return domain.Profile{}, ErrInvalidDateRange
	}

	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	edu := domain.Education{
		ID:           uuid.NewString(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	if err := s.profiles.AddEducation(ctx, profile.ID, edu); err != nil {
		return domain.Profile{}, err
	}
	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (domain.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := s.profiles.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrEntryNotFound
		}
		return domain.Profile{}, err
	}
	return s.GetByUserID(ctx, userID)
}
