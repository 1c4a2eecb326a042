package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbarboza/portfolio-backend/models"
)

func strRef(s string) *string { return &s }

func TestTargetPayloadResolve(t *testing.T) {
	projectID := uuid.New()
	achievementID := uuid.New()

	t.Run("project", func(t *testing.T) {
		ref, err := TargetPayload{ProjectID: strRef(projectID.String())}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, projectID, ref.ID)
		assert.Equal(t, models.TargetProject, ref.Type)
	})

	t.Run("achievement", func(t *testing.T) {
		ref, err := TargetPayload{AchievementID: strRef(achievementID.String())}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, achievementID, ref.ID)
		assert.Equal(t, models.TargetAchievement, ref.Type)
	})

	t.Run("empty string counts as absent", func(t *testing.T) {
		ref, err := TargetPayload{
			ProjectID:     strRef(projectID.String()),
			AchievementID: strRef(""),
		}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, models.TargetProject, ref.Type)
	})

	t.Run("rejected shapes", func(t *testing.T) {
		cases := map[string]TargetPayload{
			"neither":      {},
			"both empty":   {ProjectID: strRef(""), AchievementID: strRef("")},
			"both set":     {ProjectID: strRef(projectID.String()), AchievementID: strRef(achievementID.String())},
			"malformed id": {ProjectID: strRef("not-a-uuid")},
		}
		for name, payload := range cases {
			_, err := payload.Resolve()
			assert.Error(t, err, name)
		}
	})
}
