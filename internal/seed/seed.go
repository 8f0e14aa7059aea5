// Package seed loads demo users, profiles and posts from a YAML file through
// the service layer.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"smapp/internal/app"
	apperrors "smapp/internal/errors"
	"smapp/internal/model"
	"smapp/internal/service"
)

// File is the root of a seed document.
type File struct {
	Users []User `yaml:"users"`
}

// User is one account to register, with its optional profile and posts.
type User struct {
	Name     string   `yaml:"name"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Profile  *Profile `yaml:"profile"`
	Posts    []string `yaml:"posts"`
}

// Profile mirrors the profile request fields.
type Profile struct {
	Company        string       `yaml:"company"`
	Website        string       `yaml:"website"`
	Location       string       `yaml:"location"`
	Status         string       `yaml:"status"`
	Skills         string       `yaml:"skills"`
	Bio            string       `yaml:"bio"`
	GitHubUsername string       `yaml:"githubusername"`
	Social         model.Social `yaml:"social"`
	Experience     []Experience `yaml:"experience"`
	Education      []Education  `yaml:"education"`
}

// Experience is a seeded job entry.
type Experience struct {
	Title       string     `yaml:"title"`
	Company     string     `yaml:"company"`
	Location    string     `yaml:"location"`
	From        time.Time  `yaml:"from"`
	To          *time.Time `yaml:"to"`
	Current     bool       `yaml:"current"`
	Description string     `yaml:"description"`
}

// Education is a seeded school entry.
type Education struct {
	School       string     `yaml:"school"`
	Degree       string     `yaml:"degree"`
	FieldOfStudy string     `yaml:"fieldofstudy"`
	From         time.Time  `yaml:"from"`
	To           *time.Time `yaml:"to"`
	Current      bool       `yaml:"current"`
	Description  string     `yaml:"description"`
}

// Result counts what a run created.
type Result struct {
	Users    int
	Skipped  int
	Profiles int
	Posts    int
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Run registers every user in f. Users whose email is taken are skipped with
// their profile and posts.
func Run(ctx context.Context, a *app.App, f *File) (Result, error) {
	var res Result
	for _, u := range f.Users {
		token, err := a.Auth.Register(ctx, u.Name, u.Email, u.Password)
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			slog.Info("user exists, skipping", "email", u.Email)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("register %s: %w", u.Email, err)
		}
		claims, err := a.JWT.ValidateToken(token)
		if err != nil {
			return res, fmt.Errorf("decode token for %s: %w", u.Email, err)
		}
		res.Users++

		if u.Profile != nil {
			if err := seedProfile(ctx, a.Profiles, claims.UserID, u.Profile); err != nil {
				return res, fmt.Errorf("profile of %s: %w", u.Email, err)
			}
			res.Profiles++
		}

		for _, text := range u.Posts {
			if _, err := a.Posts.Create(ctx, claims.UserID, text); err != nil {
				return res, fmt.Errorf("post of %s: %w", u.Email, err)
			}
			res.Posts++
		}
	}
	return res, nil
}

func seedProfile(ctx context.Context, profiles service.ProfileService, userID string, p *Profile) error {
	_, err := profiles.Upsert(ctx, userID, service.ProfileInput{
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		YouTube:        p.Social.YouTube,
		Twitter:        p.Social.Twitter,
		Facebook:       p.Social.Facebook,
		LinkedIn:       p.Social.LinkedIn,
		Instagram:      p.Social.Instagram,
		TikTok:         p.Social.TikTok,
	})
	if err != nil {
		return err
	}

	// Entries are prepended, so add them oldest first to keep file order.
	for i := len(p.Experience) - 1; i >= 0; i-- {
		e := p.Experience[i]
		if _, err := profiles.AddExperience(ctx, userID, model.Experience{
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}); err != nil {
			return err
		}
	}
	for i := len(p.Education) - 1; i >= 0; i-- {
		e := p.Education[i]
		if _, err := profiles.AddEducation(ctx, userID, model.Education{
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}); err != nil {
			return err
		}
	}
	return nil
}
