package models

// Partial updates decoded from PATCH bodies. Nil fields are left untouched.
// Identifier, creation timestamp and like counters are never writable here.

type ProjectUpdate struct {
	Title           *string      `json:"title"`
	Description     *string      `json:"description"`
	FullDescription *string      `json:"fullDescription"`
	Category        *string      `json:"category"`
	Tags            *StringSlice `json:"tags"`
	ImageURL        *string      `json:"imageUrl"`
	VideoURL        *string      `json:"videoUrl"`
	DemoURL         *string      `json:"demoUrl"`
	GithubURL       *string      `json:"githubUrl"`
	Technologies    *StringSlice `json:"technologies"`
	IsPublished     *bool        `json:"isPublished"`
	IsFeatured      *bool        `json:"isFeatured"`
}

func (upd ProjectUpdate) Apply(p *Project) {
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.FullDescription != nil {
		p.FullDescription = upd.FullDescription
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.ImageURL != nil {
		p.ImageURL = upd.ImageURL
	}
	if upd.VideoURL != nil {
		p.VideoURL = upd.VideoURL
	}
	if upd.DemoURL != nil {
		p.DemoURL = upd.DemoURL
	}
	if upd.GithubURL != nil {
		p.GithubURL = upd.GithubURL
	}
	if upd.Technologies != nil {
		p.Technologies = *upd.Technologies
	}
	if upd.IsPublished != nil {
		p.IsPublished = *upd.IsPublished
	}
	if upd.IsFeatured != nil {
		p.IsFeatured = *upd.IsFeatured
	}
}

type AchievementUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Date        *DateTime `json:"date"`
	IsFeatured  *bool     `json:"isFeatured"`
}

func (upd AchievementUpdate) Apply(a *Achievement) {
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Icon != nil {
		a.Icon = *upd.Icon
	}
	if upd.Date != nil {
		a.Date = upd.Date.Time
	}
	if upd.IsFeatured != nil {
		a.IsFeatured = *upd.IsFeatured
	}
}

type ToolUpdate struct {
	Name       *string `json:"name"`
	IconURL    *string `json:"iconUrl"`
	Category   *string `json:"category"`
	Website    *string `json:"website"`
	IsFeatured *bool   `json:"isFeatured"`
	Order      *int    `json:"order"`
}

func (upd ToolUpdate) Apply(t *Tool) {
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.IconURL != nil {
		t.IconURL = upd.IconURL
	}
	if upd.Category != nil {
		t.Category = upd.Category
	}
	if upd.Website != nil {
		t.Website = upd.Website
	}
	if upd.IsFeatured != nil {
		t.IsFeatured = *upd.IsFeatured
	}
	if upd.Order != nil {
		t.Order = *upd.Order
	}
}
