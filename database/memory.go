package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bbarboza/portfolio-backend/auth"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

type likeKey struct {
	userID     uuid.UUID
	targetID   uuid.UUID
	targetType models.TargetType
}

// MemoryStore keeps every entity in process-local maps. It exists for
// zero-dependency local runs and for the store contract tests; contents are
// lost on restart. A single RWMutex guards all maps, which is enough at the
// request volumes this backend is meant for.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]models.User
	projects     map[uuid.UUID]models.Project
	achievements map[uuid.UUID]models.Achievement
	comments     map[uuid.UUID]models.Comment
	likes        map[likeKey]models.Like
	tools        map[uuid.UUID]models.Tool
}

var _ Store = (*MemoryStore)(nil)

// NewMemory builds a seeded in-memory store.
func NewMemory(cfg SeedConfig) (*MemoryStore, error) {
	s := &MemoryStore{
		users:        make(map[uuid.UUID]models.User),
		projects:     make(map[uuid.UUID]models.Project),
		achievements: make(map[uuid.UUID]models.Achievement),
		comments:     make(map[uuid.UUID]models.Comment),
		likes:        make(map[likeKey]models.Like),
		tools:        make(map[uuid.UUID]models.Tool),
	}

	seed, err := buildSeed(cfg)
	if err != nil {
		return nil, err
	}
	s.users[seed.Admin.ID] = seed.Admin
	for _, p := range seed.Projects {
		s.projects[p.ID] = p
	}
	for _, a := range seed.Achievements {
		s.achievements[a.ID] = a
	}
	for _, t := range seed.Tools {
		s.tools[t.ID] = t
	}
	return s, nil
}

// Users

func (s *MemoryStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) AdminUser(ctx context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.IsAdmin {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, errs.NewAlreadyExists("user")
		}
	}

	user.ID = uuid.New()
	user.Password = hashed
	user.IsAdmin = false
	if user.Skills == nil {
		user.Skills = models.StringSlice{}
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&u)
	s.users[id] = u
	return &u, nil
}

// Projects

func (s *MemoryStore) Projects(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if filter.Published != nil && p.IsPublished != *filter.Published {
			continue
		}
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		projects = append(projects, p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return paginate(projects, filter.Limit, filter.Offset), nil
}

func (s *MemoryStore) Project(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = uuid.New()
	project.Likes = 0
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	if project.Tags == nil {
		project.Tags = models.StringSlice{}
	}
	if project.Technologies == nil {
		project.Technologies = models.StringSlice{}
	}
	s.projects[project.ID] = project
	return &project, nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, id uuid.UUID, upd models.ProjectUpdate) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&p)
	p.UpdatedAt = time.Now()
	s.projects[id] = p
	return &p, nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	s.dropTargetRefs(id, models.TargetProject)
	return true, nil
}

// Achievements

func (s *MemoryStore) Achievements(ctx context.Context, filter AchievementFilter) ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	achievements := make([]models.Achievement, 0, len(s.achievements))
	for _, a := range s.achievements {
		if filter.Featured != nil && a.IsFeatured != *filter.Featured {
			continue
		}
		achievements = append(achievements, a)
	}
	sort.SliceStable(achievements, func(i, j int) bool {
		return achievements[i].CreatedAt.After(achievements[j].CreatedAt)
	})
	return paginate(achievements, filter.Limit, filter.Offset), nil
}

func (s *MemoryStore) Achievement(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.achievements[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateAchievement(ctx context.Context, achievement models.Achievement) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	achievement.ID = uuid.New()
	achievement.Likes = 0
	achievement.CreatedAt = time.Now()
	s.achievements[achievement.ID] = achievement
	return &achievement, nil
}

func (s *MemoryStore) UpdateAchievement(ctx context.Context, id uuid.UUID, upd models.AchievementUpdate) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.achievements[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&a)
	s.achievements[id] = a
	return &a, nil
}

func (s *MemoryStore) DeleteAchievement(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.achievements[id]; !ok {
		return false, nil
	}
	delete(s.achievements, id)
	s.dropTargetRefs(id, models.TargetAchievement)
	return true, nil
}

// dropTargetRefs removes likes and comments pointing at a deleted target.
// Caller holds the write lock.
func (s *MemoryStore) dropTargetRefs(targetID uuid.UUID, targetType models.TargetType) {
	for key := range s.likes {
		if key.targetID == targetID && key.targetType == targetType {
			delete(s.likes, key)
		}
	}
	for id, c := range s.comments {
		switch targetType {
		case models.TargetProject:
			if c.ProjectID != nil && *c.ProjectID == targetID {
				delete(s.comments, id)
			}
		case models.TargetAchievement:
			if c.AchievementID != nil && *c.AchievementID == targetID {
				delete(s.comments, id)
			}
		}
	}
}

// Tools

func (s *MemoryStore) Tools(ctx context.Context, filter ToolFilter) ([]models.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]models.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		if filter.Featured != nil && t.IsFeatured != *filter.Featured {
			continue
		}
		tools = append(tools, t)
	}
	sort.SliceStable(tools, func(i, j int) bool {
		if tools[i].Order != tools[j].Order {
			return tools[i].Order < tools[j].Order
		}
		return tools[i].Name < tools[j].Name
	})
	return paginate(tools, filter.Limit, filter.Offset), nil
}

func (s *MemoryStore) Tool(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tools[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateTool(ctx context.Context, tool models.Tool) (*models.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tool.ID = uuid.New()
	tool.CreatedAt = time.Now()
	s.tools[tool.ID] = tool
	return &tool, nil
}

func (s *MemoryStore) UpdateTool(ctx context.Context, id uuid.UUID, upd models.ToolUpdate) (*models.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tools[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&t)
	s.tools[id] = t
	return &t, nil
}

func (s *MemoryStore) DeleteTool(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tools[id]; !ok {
		return false, nil
	}
	delete(s.tools, id)
	return true, nil
}

// Comments

func (s *MemoryStore) Comments(ctx context.Context, projectID, achievementID *uuid.UUID) ([]models.CommentWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CommentWithUser
	for _, c := range s.comments {
		if projectID != nil && (c.ProjectID == nil || *c.ProjectID != *projectID) {
			continue
		}
		if achievementID != nil && (c.AchievementID == nil || *c.AchievementID != *achievementID) {
			continue
		}
		author := models.UnknownAuthor(c.UserID)
		if u, ok := s.users[c.UserID]; ok {
			author = models.CommentAuthor{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
		}
		out = append(out, models.CommentWithUser{Comment: c, Author: author})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	s.comments[comment.ID] = comment
	return &comment, nil
}

func (s *MemoryStore) DeleteComment(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return false, nil
	}
	delete(s.comments, id)
	return true, nil
}

// Likes

func (s *MemoryStore) ToggleLike(ctx context.Context, userID uuid.UUID, ref models.TargetRef) (models.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, targetID: ref.ID, targetType: ref.Type}

	switch ref.Type {
	case models.TargetProject:
		p, ok := s.projects[ref.ID]
		if !ok {
			return models.ToggleResult{}, errs.NewNotFound("project")
		}
		if _, liked := s.likes[key]; liked {
			delete(s.likes, key)
			if p.Likes > 0 {
				p.Likes--
			}
			s.projects[ref.ID] = p
			return models.ToggleResult{Liked: false, Count: p.Likes}, nil
		}
		s.likes[key] = models.Like{
			ID:         uuid.New(),
			UserID:     userID,
			TargetID:   ref.ID,
			TargetType: ref.Type,
			CreatedAt:  time.Now(),
		}
		p.Likes++
		s.projects[ref.ID] = p
		return models.ToggleResult{Liked: true, Count: p.Likes}, nil

	case models.TargetAchievement:
		a, ok := s.achievements[ref.ID]
		if !ok {
			return models.ToggleResult{}, errs.NewNotFound("achievement")
		}
		if _, liked := s.likes[key]; liked {
			delete(s.likes, key)
			if a.Likes > 0 {
				a.Likes--
			}
			s.achievements[ref.ID] = a
			return models.ToggleResult{Liked: false, Count: a.Likes}, nil
		}
		s.likes[key] = models.Like{
			ID:         uuid.New(),
			UserID:     userID,
			TargetID:   ref.ID,
			TargetType: ref.Type,
			CreatedAt:  time.Now(),
		}
		a.Likes++
		s.achievements[ref.ID] = a
		return models.ToggleResult{Liked: true, Count: a.Likes}, nil

	default:
		return models.ToggleResult{}, errs.NewBadRequestError("unknown like target type")
	}
}

func (s *MemoryStore) UserLikes(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Like
	for key, like := range s.likes {
		if key.userID == userID {
			out = append(out, like)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
