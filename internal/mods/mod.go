package mods

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// defaultContent is the base64 readme placeholder shown until the
// maintainer writes one ("Add a good readme so users can understand your
// mod...").
const defaultContent = "QWRkIGEgZ29vZCByZWFkbWUgc28gdXNlcnMgY2FuIHVuZGVyc3RhbmQgeW91ciBtb2QuLi4="

var modIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// AssetLink maps a downloaded file into the install location.
type AssetLink struct {
	Source     string `json:"source" bson:"source"`
	Target     string `json:"target" bson:"target"`
	RunOnStart bool   `json:"runonstart,omitempty" bson:"runonstart,omitempty"`
}

// Asset is a downloadable file plus its install links.
type Asset struct {
	RemoteSource string      `json:"remoteSource" bson:"remoteSource"`
	Links        []AssetLink `json:"links" bson:"links"`
}

// Release is a published version of a mod.
type Release struct {
	ReleasePage string    `json:"releasepage" bson:"releasepage"`
	Name        string    `json:"name" bson:"name"`
	Version     string    `json:"version" bson:"version"`
	Date        time.Time `json:"date" bson:"date"`
	ExePath     string    `json:"exePath,omitempty" bson:"exePath,omitempty"`
	Assets      []Asset   `json:"assets" bson:"assets"`
}

// Mod is the registry document for a single mod. Maintainers is the owner
// set consulted by the authorization policy.
type Mod struct {
	ID           string    `json:"id" bson:"id"`
	Homepage     string    `json:"homepage" bson:"homepage"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Authors      []string  `json:"authors" bson:"authors"`
	Tags         []string  `json:"tags" bson:"tags"`
	Category     string    `json:"category" bson:"category"`
	License      string    `json:"license" bson:"license"`
	Latest       string    `json:"latest,omitempty" bson:"latest,omitempty"`
	Dependencies []string  `json:"dependencies" bson:"dependencies"`
	Versions     []Release `json:"versions" bson:"versions"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Content      string    `json:"content" bson:"content"`
	Deleted      bool      `json:"deleted" bson:"deleted"`
	Maintainers  []string  `json:"maintainers" bson:"maintainers"`
}

// Summary is a Mod without the heavyweight fields (readme content and
// version history), used for listings.
type Summary struct {
	ID           string   `json:"id" bson:"id"`
	Homepage     string   `json:"homepage" bson:"homepage"`
	Name         string   `json:"name" bson:"name"`
	Description  string   `json:"description" bson:"description"`
	Authors      []string `json:"authors" bson:"authors"`
	Tags         []string `json:"tags" bson:"tags"`
	Category     string   `json:"category" bson:"category"`
	License      string   `json:"license" bson:"license"`
	Latest       string   `json:"latest,omitempty" bson:"latest,omitempty"`
	Dependencies []string `json:"dependencies" bson:"dependencies"`
	ImageURL     string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Deleted      bool     `json:"deleted" bson:"deleted"`
	Maintainers  []string `json:"maintainers" bson:"maintainers"`
}

// Summary projects the mod onto its listing shape.
func (m *Mod) Summary() Summary {
	return Summary{
		ID:           m.ID,
		Homepage:     m.Homepage,
		Name:         m.Name,
		Description:  m.Description,
		Authors:      m.Authors,
		Tags:         m.Tags,
		Category:     m.Category,
		License:      m.License,
		Latest:       m.Latest,
		Dependencies: m.Dependencies,
		ImageURL:     m.ImageURL,
		Deleted:      m.Deleted,
		Maintainers:  m.Maintainers,
	}
}

// Validate enforces the document invariants shared by create and update.
func (m *Mod) Validate() error {
	if !modIDPattern.MatchString(m.ID) {
		return errors.New("mods: id must be kebab case (lowercase letters, digits, hyphens)")
	}

	if len(m.Maintainers) == 0 {
		return errors.New("mods: at least one maintainer is required")
	}

	for _, d := range m.Dependencies {
		if !modIDPattern.MatchString(d) {
			return errors.New("mods: dependency ids must be kebab case")
		}
	}

	for _, v := range m.Versions {
		for _, a := range v.Assets {
			for _, l := range a.Links {
				if strings.Contains(l.Target, `\`) {
					return errors.New("mods: link targets must use unix style paths")
				}
			}
		}
	}

	return nil
}

// CreateMod is the machine-write payload. Everything not listed here takes
// a registry default.
type CreateMod struct {
	ID          string   `json:"id" binding:"required"`
	Homepage    string   `json:"homepage" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Authors     []string `json:"authors"`
	Maintainers []string `json:"maintainers" binding:"required,min=1"`
}

// NewMod builds a full mod document from the create payload.
func (c CreateMod) NewMod() *Mod {
	return &Mod{
		ID:           c.ID,
		Homepage:     c.Homepage,
		Name:         c.Name,
		Description:  c.Description,
		Authors:      orEmpty(c.Authors),
		Tags:         []string{},
		Category:     "Uncategorized",
		License:      "MIT License",
		Dependencies: []string{},
		Versions:     []Release{},
		Content:      defaultContent,
		Deleted:      false,
		Maintainers:  c.Maintainers,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
