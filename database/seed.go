package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/bbarboza/portfolio-backend/auth"
	"github.com/bbarboza/portfolio-backend/models"
)

// SeedConfig controls bootstrap content. The admin user is the only account
// with IsAdmin set; both backends seed the same content so either can back a
// fresh deployment.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	SampleContent bool
}

func (c SeedConfig) withDefaults() SeedConfig {
	if c.AdminEmail == "" {
		c.AdminEmail = "admin@portfolio.local"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "change-me"
	}
	if c.AdminName == "" {
		c.AdminName = "Portfolio Admin"
	}
	return c
}

type seedData struct {
	Admin        models.User
	Projects     []models.Project
	Achievements []models.Achievement
	Tools        []models.Tool
}

func strPtr(s string) *string { return &s }

// buildSeed assembles the bootstrap records. Like counters start at zero so
// the counter-equals-row-count invariant holds from the first toggle.
func buildSeed(cfg SeedConfig) (seedData, error) {
	cfg = cfg.withDefaults()

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return seedData{}, err
	}

	now := time.Now()

	admin := models.User{
		ID:        uuid.New(),
		Email:     cfg.AdminEmail,
		Password:  hashed,
		Name:      cfg.AdminName,
		AboutText: strPtr("Full-stack developer and UI/UX designer building digital products end to end."),
		Skills:    models.StringSlice{"React", "Node.js", "Go", "TypeScript", "Figma", "AWS"},
		IsAdmin:   true,
		CreatedAt: now,
	}

	data := seedData{Admin: admin}
	if !cfg.SampleContent {
		return data, nil
	}

	data.Projects = []models.Project{
		{
			ID:              uuid.New(),
			Title:           "E-commerce Platform",
			Description:     "Full e-commerce platform with admin dashboard, payments and inventory management.",
			FullDescription: strPtr("Complete storefront with authentication, cart, Stripe payments and an admin dashboard for products and orders."),
			Category:        "Web App",
			Tags:            models.StringSlice{"React", "Node.js", "Stripe API", "JWT"},
			DemoURL:         strPtr("https://demo.example.com"),
			GithubURL:       strPtr("https://github.com/example/ecommerce"),
			Technologies:    models.StringSlice{"React", "Node.js", "MongoDB"},
			IsPublished:     true,
			IsFeatured:      true,
			CreatedAt:       now.Add(-3 * time.Hour),
			UpdatedAt:       now.Add(-3 * time.Hour),
		},
		{
			ID:           uuid.New(),
			Title:        "FinTech Mobile App",
			Description:  "Personal finance mobile app with automatic expense categorization.",
			Category:     "Mobile",
			Tags:         models.StringSlice{"React Native", "UI/UX"},
			DemoURL:      strPtr("https://demo.example.com"),
			Technologies: models.StringSlice{"React Native", "Figma"},
			IsPublished:  true,
			IsFeatured:   true,
			CreatedAt:    now.Add(-2 * time.Hour),
			UpdatedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:           uuid.New(),
			Title:        "Analytics Dashboard",
			Description:  "Interactive business analytics dashboard with real-time reporting.",
			Category:     "Dashboard",
			Tags:         models.StringSlice{"D3.js", "Go", "PostgreSQL"},
			Technologies: models.StringSlice{"Go", "PostgreSQL", "D3.js"},
			IsPublished:  false,
			CreatedAt:    now.Add(-time.Hour),
			UpdatedAt:    now.Add(-time.Hour),
		},
	}

	data.Achievements = []models.Achievement{
		{
			ID:          uuid.New(),
			Title:       "AWS Certified Solutions Architect",
			Description: "Associate-level certification covering resilient and cost-optimized architectures.",
			Icon:        "aws",
			Date:        now.AddDate(-1, 0, 0),
			IsFeatured:  true,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          uuid.New(),
			Title:       "Google UX Design Certificate",
			Description: "Professional certificate in user experience research and interface design.",
			Icon:        "google",
			Date:        now.AddDate(0, -8, 0),
			CreatedAt:   now.Add(-time.Hour),
		},
		{
			ID:          uuid.New(),
			Title:       "Hackathon Winner",
			Description: "First place at a 48-hour fintech hackathon with a team of four.",
			Icon:        "trophy",
			Date:        now.AddDate(0, -3, 0),
			IsFeatured:  true,
			CreatedAt:   now,
		},
	}

	data.Tools = []models.Tool{
		{ID: uuid.New(), Name: "React", Category: strPtr("Frontend"), IsFeatured: true, Order: 1, CreatedAt: now},
		{ID: uuid.New(), Name: "Go", Category: strPtr("Backend"), IsFeatured: true, Order: 2, CreatedAt: now},
		{ID: uuid.New(), Name: "PostgreSQL", Category: strPtr("Database"), Order: 3, CreatedAt: now},
		{ID: uuid.New(), Name: "Figma", Category: strPtr("Design"), Order: 4, CreatedAt: now},
	}

	return data, nil
}
