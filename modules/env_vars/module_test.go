package env_vars

import (
	"context"
	"testing"

	"github.com/specialistvlad/rigup/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnRunRequireEnv(t *testing.T) {
	t.Setenv("RIGUP_TEST_PRESENT", "1")
	t.Setenv("RIGUP_TEST_EMPTY", "")

	t.Run("all present", func(t *testing.T) {
		err := OnRunRequireEnv(context.Background(), handlers.Call{Args: []string{"RIGUP_TEST_PRESENT"}})
		assert.NoError(t, err)
	})

	t.Run("reports every missing name", func(t *testing.T) {
		err := OnRunRequireEnv(context.Background(), handlers.Call{
			Args: []string{"RIGUP_TEST_PRESENT", "RIGUP_TEST_EMPTY", "RIGUP_TEST_ABSENT"},
		})
		require.Error(t, err)
		assert.Equal(t, "missing environment variables: RIGUP_TEST_EMPTY, RIGUP_TEST_ABSENT", err.Error())
	})
}
