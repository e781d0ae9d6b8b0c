//go:build unit

package git_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitRepo "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories/git"
)

func TestNextBranchName(t *testing.T) {
	t.Parallel()

	t.Run("should start at zero", func(t *testing.T) {
		t.Parallel()

		// given
		existing := map[string]bool{"main": true}

		// when
		name, err := gitRepo.NextBranchName("bump-fetchcontent", existing)

		// then
		require.NoError(t, err)
		assert.Equal(t, "bump-fetchcontent-0", name)
	})

	t.Run("should take the first free suffix", func(t *testing.T) {
		t.Parallel()

		// given
		existing := map[string]bool{"bump-0": true, "bump-1": true, "bump-3": true}

		// when
		name, err := gitRepo.NextBranchName("bump", existing)

		// then
		require.NoError(t, err)
		assert.Equal(t, "bump-2", name)
	})

	t.Run("should give up after a hundred branches", func(t *testing.T) {
		t.Parallel()

		// given
		existing := make(map[string]bool)
		for i := range 100 {
			existing[fmt.Sprintf("bump-%d", i)] = true
		}

		// when
		_, err := gitRepo.NextBranchName("bump", existing)

		// then
		require.ErrorIs(t, err, gitRepo.ErrTooManyBranches)
	})
}
