package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

// AppendTestFeedback is a helper that appends one feedback row and fails the
// test on error.
func AppendTestFeedback(t *testing.T, repo *FeedbackRepo, level string) *domain.Feedback {
	t.Helper()

	fb, err := repo.Append(context.Background(), level)
	require.NoError(t, err)
	require.NotZero(t, fb.ID)
	require.Positive(t, fb.Sequence)

	return fb
}
