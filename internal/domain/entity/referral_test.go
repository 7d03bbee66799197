package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referralUser(first, code, referredBy string) *User {
	return &User{
		ID:           uuid.New(),
		FirstName:    first,
		Email:        first + "@example.com",
		Role:         RoleUser,
		IsActive:     true,
		ReferralCode: code,
		ReferredBy:   referredBy,
	}
}

func TestBuildReferralForest_SingleRootWithChildren(t *testing.T) {
	root := referralUser("root", "ROOT00001", "")
	a := referralUser("alice", "ALICE0001", "ROOT00001")
	b := referralUser("bob", "BOB000001", "ROOT00001")

	forest := BuildReferralForest([]*User{root, a, b})

	require.Len(t, forest, 1)
	assert.Equal(t, root.ID, forest[0].User.ID)
	require.Len(t, forest[0].Referrals, 2)

	got := map[uuid.UUID]bool{}
	for _, child := range forest[0].Referrals {
		got[child.User.ID] = true
		assert.Empty(t, child.Referrals)
	}
	assert.True(t, got[a.ID])
	assert.True(t, got[b.ID])
}

func TestBuildReferralForest_NestedLevels(t *testing.T) {
	root := referralUser("root", "ROOT00001", "")
	mid := referralUser("mid", "MID000001", "ROOT00001")
	leaf := referralUser("leaf", "LEAF00001", "MID000001")

	forest := BuildReferralForest([]*User{leaf, mid, root})

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Referrals, 1)
	require.Len(t, forest[0].Referrals[0].Referrals, 1)
	assert.Equal(t, leaf.ID, forest[0].Referrals[0].Referrals[0].User.ID)
}

func TestBuildReferralForest_OrphanedReferrerBecomesRoot(t *testing.T) {
	orphan := referralUser("orphan", "ORPHAN001", "GONE00001")

	forest := BuildReferralForest([]*User{orphan})

	require.Len(t, forest, 1)
	assert.Equal(t, orphan.ID, forest[0].User.ID)
}

func TestBuildReferralForest_CycleDoesNotRecurseForever(t *testing.T) {
	// Impossible via registration (a code must pre-exist), but the builder
	// must not blow the stack when data is malformed.
	x := referralUser("x", "XCODE0001", "YCODE0001")
	y := referralUser("y", "YCODE0001", "XCODE0001")

	forest := BuildReferralForest([]*User{x, y})

	total := 0
	var count func(nodes []*ReferralNode)
	count = func(nodes []*ReferralNode) {
		for _, n := range nodes {
			total++
			count(n.Referrals)
		}
	}
	count(forest)
	assert.Equal(t, 2, total, "each user appears exactly once")
}

func TestBuildReferralForest_Empty(t *testing.T) {
	assert.Empty(t, BuildReferralForest(nil))
}

func TestNewReferralCode(t *testing.T) {
	code := NewReferralCode()
	assert.Len(t, code, referralCodeLength)
	for _, r := range code {
		assert.Contains(t, referralCodeAlphabet, string(r))
	}
	assert.NotEqual(t, code, NewReferralCode())
}
