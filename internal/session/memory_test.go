package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueResolveRevoke(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	token, err := s.Issue(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	require.NoError(t, s.Revoke(ctx, token))
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// revoking again is fine
	assert.NoError(t, s.Revoke(ctx, token))
}

func TestResolveUnknownToken(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	_, err := s.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.Issue(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, token, 64)
		require.False(t, seen[token], "duplicate token issued")
		seen[token] = true
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10 * time.Millisecond)

	token, err := s.Issue(ctx, "alice")
	require.NoError(t, err)

	_, err = s.Resolve(ctx, token)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	token, err := s.Issue(ctx, "alice")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	got, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				token, err := s.Issue(ctx, "worker")
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := s.Resolve(ctx, token); err != nil {
					t.Error(err)
					return
				}
				if err := s.Revoke(ctx, token); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
