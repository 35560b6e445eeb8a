// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Profile is the public profile of a GitHub user.
// It is replaced wholesale on every search.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url,omitempty"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

// DisplayName returns the user's name, or the login when no name is set.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// Repository is a single repository as returned by the repositories listing.
// An empty Language means the API recorded no primary language.
type Repository struct {
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	HTMLURL         string    `json:"html_url"`
	Language        string    `json:"language,omitempty"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Fork            bool      `json:"fork"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Popularity is the ranking score used for display ordering: stars plus forks.
func (r Repository) Popularity() int {
	return r.StargazersCount + r.ForksCount
}
