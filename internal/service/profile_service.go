package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "smapp/internal/errors"
	"smapp/internal/events"
	"smapp/internal/github"
	"smapp/internal/model"
	"smapp/internal/repository"
)

// ProfileInput carries the fields of a create-or-update request. Empty strings
// mean "not provided".
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GitHubUsername string
	YouTube        string
	Twitter        string
	Facebook       string
	LinkedIn       string
	Instagram      string
	TikTok         string
}

// RepoLister lists public repositories of a GitHub user.
type RepoLister interface {
	Repos(ctx context.Context, username string) ([]github.Repo, error)
}

// ProfileService manages profiles, their sub-lists and account removal.
type ProfileService interface {
	Me(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	ByUsername(ctx context.Context, username string) (*model.Profile, error)
	ByUserID(ctx context.Context, userID string) (*model.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, userID string, exp model.Experience) (*model.Profile, error)
	UpdateExperience(ctx context.Context, userID, expID string, exp model.Experience) (*model.Profile, error)
	DeleteExperience(ctx context.Context, userID, expID string) (*model.Profile, error)

	AddEducation(ctx context.Context, userID string, edu model.Education) (*model.Profile, error)
	UpdateEducation(ctx context.Context, userID, eduID string, edu model.Education) (*model.Profile, error)
	DeleteEducation(ctx context.Context, userID, eduID string) (*model.Profile, error)

	GitHubRepos(ctx context.Context, username string) ([]github.Repo, error)
}

type profileService struct {
	store     *repository.Store
	users     UserService
	github    RepoLister
	publisher events.Publisher
}

// NewProfileService creates a new profile service.
func NewProfileService(store *repository.Store, users UserService, repos RepoLister, publisher events.Publisher) ProfileService {
	return &profileService{store: store, users: users, github: repos, publisher: publisher}
}

func (s *profileService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

// Upsert creates the caller's profile or overwrites the provided fields of the
// existing one. Social links are always replaced as a whole.
func (s *profileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.Profiles.FindByUserID(ctx, userID)
	created := false
	switch {
	case errors.Is(err, repository.ErrNotFound):
		profile = &model.Profile{UserID: userID}
		created = true
	case err != nil:
		return nil, fmt.Errorf("find profile: %w", err)
	}

	applyProfileInput(profile, in)
	profile.Username = user.Name

	if created {
		profile.PrepareInsert()
		err = s.store.Profiles.Create(ctx, profile)
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent request created the profile first; merge into it.
			profile, err = s.store.Profiles.FindByUserID(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("find profile: %w", err)
			}
			created = false
			applyProfileInput(profile, in)
			profile.Username = user.Name
			err = s.store.Profiles.Update(ctx, profile)
		}
	} else {
		err = s.store.Profiles.Update(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	publish(ctx, s.publisher, events.ProfileUpserted, userID, map[string]interface{}{
		"profile_id": profile.ID,
		"created":    created,
	})
	profile.User = user.Summary()
	return profile, nil
}

func applyProfileInput(p *model.Profile, in ProfileInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Company, in.Company)
	set(&p.Website, in.Website)
	set(&p.Location, in.Location)
	set(&p.Status, in.Status)
	set(&p.Bio, in.Bio)
	set(&p.GitHubUsername, in.GitHubUsername)
	if in.Skills != "" {
		p.Skills = SplitSkills(in.Skills)
	}
	p.Social = model.Social{
		YouTube:   in.YouTube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		LinkedIn:  in.LinkedIn,
		Instagram: in.Instagram,
		TikTok:    in.TikTok,
	}
}

// SplitSkills turns "Go, SQL ,Docker" into a trimmed list, dropping blanks.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *profileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.store.Profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	summaries, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].User = summaries[profiles[i].UserID]
	}
	return profiles, nil
}

func (s *profileService) ByUsername(ctx context.Context, username string) (*model.Profile, error) {
	profile, err := s.store.Profiles.FindByUsername(ctx, username)
	if err != nil {
		return nil, profileErr(err)
	}
	return s.populate(ctx, profile)
}

func (s *profileService) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

// DeleteAccount removes the user's posts, profile and user record, in that order.
func (s *profileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.store.Posts.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	if err := s.store.Profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.store.Users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.users.Invalidate(ctx, userID)
	publish(ctx, s.publisher, events.AccountDeleted, userID, nil)
	return nil
}

func (s *profileService) AddExperience(ctx context.Context, userID string, exp model.Experience) (*model.Profile, error) {
	return s.mutate(ctx, userID, func(p *model.Profile) error {
		exp.ID = newID()
		p.Experience = append([]model.Experience{exp}, p.Experience...)
		return nil
	})
}

func (s *profileService) UpdateExperience(ctx context.Context, userID, expID string, exp model.Experience) (*model.Profile, error) {
	return s.mutate(ctx, userID, func(p *model.Profile) error {
		i := p.ExperienceIndex(expID)
		if i < 0 {
			return apperrors.ErrExperienceNotFound
		}
		exp.ID = expID
		p.Experience[i] = exp
		return nil
	})
}

func (s *profileService) DeleteExperience(ctx context.Context, userID, expID string) (*model.Profile, error) {
	return s.mutate(ctx, userID, func(p *model.Profile) error {
		i := p.ExperienceIndex(expID)
		if i < 0 {
			return apperrors.ErrExperienceNotFound
		}
		p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
		return nil
	})
}

func (s *profileService) AddEducation(ctx context.Context, userID string, edu model.Education) (*model.Profile, error) {
	return s.mutate(ctx, userID, func(p *model.Profile) error {
		edu.ID = newID()
		p.Education = append([]model.Education{edu}, p.Education...)
		return nil
	})
}

func (s *profileService) UpdateEducation(ctx context.Context, userID, eduID string, edu model.Education) (*model.Profile, error) {
	return s.mutate(ctx, userID, func(p *model.Profile) error {
		i := p.EducationIndex(eduID)
		if i < 0 {
			return apperrors.ErrEducationNotFound
		}
		edu.ID = eduID
		p.Education[i] = edu
		return nil
	})
}

func (s *profileService) DeleteEducation(ctx context.Context, userID, eduID string) (*model.Profile, error) {
	return s.mutate(ctx, userID, func(p *model.Profile) error {
		i := p.EducationIndex(eduID)
		if i < 0 {
			return apperrors.ErrEducationNotFound
		}
		p.Education = append(p.Education[:i], p.Education[i+1:]...)
		return nil
	})
}

func (s *profileService) GitHubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	repos, err := s.github.Repos(ctx, username)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return nil, apperrors.ErrGitHubProfileNotFound
		}
		return nil, fmt.Errorf("list github repos: %w", err)
	}
	if repos == nil {
		repos = []github.Repo{}
	}
	return repos, nil
}

// mutate loads the caller's profile, applies fn and persists the result.
func (s *profileService) mutate(ctx context.Context, userID string, fn func(*model.Profile) error) (*model.Profile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(profile); err != nil {
		return nil, err
	}
	if err := s.store.Profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.populate(ctx, profile)
}

func (s *profileService) find(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.store.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, profileErr(err)
	}
	return profile, nil
}

func (s *profileService) populate(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	user, err := s.users.GetUser(ctx, profile.UserID)
	switch {
	case err == nil:
		profile.User = user.Summary()
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, err
	}
	return profile, nil
}

func profileErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return fmt.Errorf("find profile: %w", err)
}
