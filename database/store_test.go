package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbarboza/portfolio-backend/auth"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store, err := NewMemory(SeedConfig{
		AdminEmail:    "owner@example.com",
		AdminPassword: "hunter2-hunter2",
		AdminName:     "Site Owner",
		SampleContent: true,
	})
	require.NoError(t, err)
	return store
}

func boolPtr(b bool) *bool { return &b }

func TestSeededContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	admin, err := store.AdminUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "owner@example.com", admin.Email)
	assert.True(t, admin.IsAdmin)
	assert.True(t, auth.CheckPassword(admin.Password, "hunter2-hunter2"))

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 3)
	for _, p := range projects {
		assert.Zero(t, p.Likes, "seeded projects start with zero likes")
	}

	achievements, err := store.Achievements(ctx, AchievementFilter{})
	require.NoError(t, err)
	assert.Len(t, achievements, 3)

	tools, err := store.Tools(ctx, ToolFilter{})
	require.NoError(t, err)
	assert.Len(t, tools, 4)
}

func TestProjectListingFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published, err := store.Projects(ctx, ProjectFilter{Published: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, published, 2)
	for _, p := range published {
		assert.True(t, p.IsPublished)
	}

	drafts, err := store.Projects(ctx, ProjectFilter{Published: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Analytics Dashboard", drafts[0].Title)

	// Newest-created first.
	all, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Analytics Dashboard", all[0].Title)
	assert.Equal(t, "E-commerce Platform", all[2].Title)

	page, err := store.Projects(ctx, ProjectFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)

	past, err := store.Projects(ctx, ProjectFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestToolOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tools, err := store.Tools(ctx, ToolFilter{})
	require.NoError(t, err)
	require.Len(t, tools, 4)
	for i := 1; i < len(tools); i++ {
		assert.LessOrEqual(t, tools[i-1].Order, tools[i].Order)
	}
}

func TestCreateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, models.User{
		Email:    "visitor@example.com",
		Password: "plaintext-password",
		Name:     "Visitor",
		IsAdmin:  true, // must be ignored
	})
	require.NoError(t, err)
	assert.False(t, created.IsAdmin)
	assert.NotEqual(t, "plaintext-password", created.Password)
	assert.True(t, auth.CheckPassword(created.Password, "plaintext-password"))

	// Duplicate email, case-insensitively.
	_, err = store.CreateUser(ctx, models.User{
		Email:    "VISITOR@example.com",
		Password: "other",
		Name:     "Other",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestUpdateUserPartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	admin, err := store.AdminUser(ctx)
	require.NoError(t, err)

	name := "Renamed Owner"
	updated, err := store.UpdateUser(ctx, admin.ID, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed Owner", updated.Name)
	assert.Equal(t, admin.Email, updated.Email)
	assert.True(t, updated.IsAdmin)

	missing, err := store.UpdateUser(ctx, uuid.New(), models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.User{Email: "liker@example.com", Password: "pw", Name: "Liker"})
	require.NoError(t, err)

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	ref := models.TargetRef{ID: projects[0].ID, Type: models.TargetProject}

	result, err := store.ToggleLike(ctx, user.ID, ref)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.Count)

	likes, err := store.UserLikes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, ref.ID, likes[0].TargetID)
	assert.Equal(t, models.TargetProject, likes[0].TargetType)

	result, err = store.ToggleLike(ctx, user.ID, ref)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.Count)

	likes, err = store.UserLikes(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	project, err := store.Project(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, project.Likes)
}

func TestToggleLikeMissingTarget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.User{Email: "liker@example.com", Password: "pw", Name: "Liker"})
	require.NoError(t, err)

	_, err = store.ToggleLike(ctx, user.ID, models.TargetRef{ID: uuid.New(), Type: models.TargetProject})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	_, err = store.ToggleLike(ctx, user.ID, models.TargetRef{ID: uuid.New(), Type: models.TargetAchievement})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestToggleLikeCounterNeverNegative(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.User{Email: "liker@example.com", Password: "pw", Name: "Liker"})
	require.NoError(t, err)

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	ref := models.TargetRef{ID: projects[0].ID, Type: models.TargetProject}

	// Simulate counter drift: a like row exists while the counter reads zero.
	store.mu.Lock()
	store.likes[likeKey{userID: user.ID, targetID: ref.ID, targetType: ref.Type}] = models.Like{
		ID: uuid.New(), UserID: user.ID, TargetID: ref.ID, TargetType: ref.Type, CreatedAt: time.Now(),
	}
	store.mu.Unlock()

	result, err := store.ToggleLike(ctx, user.ID, ref)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.Count, "unliking at zero must floor, not go negative")
}

func TestToggleLikeCounterMatchesRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var users []*models.User
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		u, err := store.CreateUser(ctx, models.User{Email: email, Password: "pw", Name: email})
		require.NoError(t, err)
		users = append(users, u)
	}

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	achievements, err := store.Achievements(ctx, AchievementFilter{})
	require.NoError(t, err)

	refs := []models.TargetRef{
		{ID: projects[0].ID, Type: models.TargetProject},
		{ID: projects[1].ID, Type: models.TargetProject},
		{ID: achievements[0].ID, Type: models.TargetAchievement},
	}

	// An arbitrary toggle sequence with repeats.
	sequence := []struct{ user, ref int }{
		{0, 0}, {1, 0}, {2, 0}, {0, 0}, // project 0 ends at 2
		{0, 1}, {0, 1}, {1, 1}, // project 1 ends at 1
		{2, 2}, {0, 2}, // achievement 0 ends at 2
	}
	for _, step := range sequence {
		_, err := store.ToggleLike(ctx, users[step.user].ID, refs[step.ref])
		require.NoError(t, err)
	}

	counts := make(map[uuid.UUID]int)
	store.mu.RLock()
	for key := range store.likes {
		counts[key.targetID]++
	}
	store.mu.RUnlock()

	p0, err := store.Project(ctx, refs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p0.Likes)
	assert.Equal(t, counts[refs[0].ID], p0.Likes)

	p1, err := store.Project(ctx, refs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Likes)
	assert.Equal(t, counts[refs[1].ID], p1.Likes)

	a0, err := store.Achievement(ctx, refs[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, a0.Likes)
	assert.Equal(t, counts[refs[2].ID], a0.Likes)
}

func TestToggleLikeConcurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	ref := models.TargetRef{ID: projects[0].ID, Type: models.TargetProject}

	const users = 32
	ids := make([]uuid.UUID, users)
	for i := range ids {
		u, err := store.CreateUser(ctx, models.User{
			Email:    fmt.Sprintf("user-%d@example.com", i),
			Password: "pw",
			Name:     "User",
		})
		require.NoError(t, err)
		ids[i] = u.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			_, err := store.ToggleLike(ctx, userID, ref)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	project, err := store.Project(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, users, project.Likes)
}

func TestToggleLikeAroundExistingLikes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	ref := models.TargetRef{ID: projects[0].ID, Type: models.TargetProject}

	// Five users like the project first.
	for i := 0; i < 5; i++ {
		u, err := store.CreateUser(ctx, models.User{
			Email:    fmt.Sprintf("base-%d@example.com", i),
			Password: "pw",
			Name:     "Base",
		})
		require.NoError(t, err)
		result, err := store.ToggleLike(ctx, u.ID, ref)
		require.NoError(t, err)
		require.True(t, result.Liked)
	}

	sixth, err := store.CreateUser(ctx, models.User{Email: "sixth@example.com", Password: "pw", Name: "Sixth"})
	require.NoError(t, err)

	result, err := store.ToggleLike(ctx, sixth.ID, ref)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 6, result.Count)

	result, err = store.ToggleLike(ctx, sixth.ID, ref)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 5, result.Count, "unliking only removes the caller's own like")
}

func TestDeleteProjectCleansUpReferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	admin, err := store.AdminUser(ctx)
	require.NoError(t, err)

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	target := projects[0]

	_, err = store.ToggleLike(ctx, admin.ID, models.TargetRef{ID: target.ID, Type: models.TargetProject})
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, models.Comment{
		Content:   "Nice work",
		UserID:    admin.ID,
		ProjectID: &target.ID,
	})
	require.NoError(t, err)

	deleted, err := store.DeleteProject(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	likes, err := store.UserLikes(ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	comments, err := store.Comments(ctx, &target.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, comments)

	deleted, err = store.DeleteProject(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete reports missing")
}

func TestCommentsJoinAuthor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	admin, err := store.AdminUser(ctx)
	require.NoError(t, err)

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	target := projects[0]

	_, err = store.CreateComment(ctx, models.Comment{
		Content:   "Great project",
		UserID:    admin.ID,
		ProjectID: &target.ID,
	})
	require.NoError(t, err)

	ghostID := uuid.New()
	_, err = store.CreateComment(ctx, models.Comment{
		Content:   "Orphaned",
		UserID:    ghostID,
		ProjectID: &target.ID,
	})
	require.NoError(t, err)

	comments, err := store.Comments(ctx, &target.ID, nil)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	byContent := make(map[string]models.CommentWithUser, len(comments))
	for _, c := range comments {
		byContent[c.Content] = c
	}
	assert.Equal(t, admin.Name, byContent["Great project"].Author.Name)
	assert.Equal(t, "Unknown User", byContent["Orphaned"].Author.Name)
	assert.Equal(t, ghostID, byContent["Orphaned"].Author.ID)
}

func TestUpdateProjectPartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	projects, err := store.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	original := projects[0]

	title := "Renamed"
	updated, err := store.UpdateProject(ctx, original.ID, models.ProjectUpdate{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.Likes, updated.Likes)

	missing, err := store.UpdateProject(ctx, uuid.New(), models.ProjectUpdate{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, missing)
}
