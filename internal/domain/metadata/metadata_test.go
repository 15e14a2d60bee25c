package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetached verifies the literal HEAD branch is treated as detached.
func TestDetached(t *testing.T) {
	t.Parallel()

	require.True(t, (&Metadata{Branch: "HEAD"}).Detached())
	require.False(t, (&Metadata{Branch: "main"}).Detached())
	require.False(t, (&Metadata{Branch: "feature/HEAD"}).Detached())
}

// TestSubject returns only the first line of multi-line messages.
func TestSubject(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Fix build", (&Metadata{CommitMessage: "Fix build\r\n\r\nDetails"}).Subject())
	require.Equal(t, "One line", (&Metadata{CommitMessage: "One line"}).Subject())
	require.Empty(t, (&Metadata{}).Subject())
}
