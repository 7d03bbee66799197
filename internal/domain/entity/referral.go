package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReferralCode is the standalone promotional code registry managed by admins.
// Registration validates against User.ReferralCode, not this registry; the
// registry carries usage metadata for campaign-style codes.
type ReferralCode struct {
	ID         uuid.UUID   `json:"id"`
	Code       string      `json:"code"`
	UserID     uuid.UUID   `json:"userId"`
	User       *PublicUser `json:"user,omitempty"`
	IsActive   bool        `json:"isActive"`
	UsageCount int         `json:"usageCount"`
	MaxUsage   *int        `json:"maxUsage,omitempty"`
	ExpiresAt  *time.Time  `json:"expiresAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// ReferralNode is one user in the referral forest with their direct referrals.
type ReferralNode struct {
	User      *PublicUser     `json:"user"`
	Referrals []*ReferralNode `json:"referrals"`
}

// BuildReferralForest assembles the referral forest from a flat user snapshot.
// One pass groups users by the code that referred them; roots are users with
// no referrer or whose referrer's code matches no known user. A visited set
// guards against malformed cycles, which would otherwise recurse unboundedly.
func BuildReferralForest(users []*User) []*ReferralNode {
	byCode := make(map[string]*User, len(users))
	for _, u := range users {
		byCode[u.ReferralCode] = u
	}

	children := make(map[string][]*User, len(users))
	var roots []*User
	for _, u := range users {
		if u.ReferredBy == "" {
			roots = append(roots, u)

			continue
		}
		if _, ok := byCode[u.ReferredBy]; !ok {
			// Referrer left the system or the code was never issued;
			// surface the user as a root rather than dropping them.
			roots = append(roots, u)

			continue
		}
		children[u.ReferredBy] = append(children[u.ReferredBy], u)
	}

	visited := make(map[uuid.UUID]bool, len(users))
	forest := make([]*ReferralNode, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, buildReferralNode(root, children, visited))
	}

	// A malformed referral cycle has no root and would drop its members
	// entirely; break each such cycle at an arbitrary user.
	for _, u := range users {
		if !visited[u.ID] {
			forest = append(forest, buildReferralNode(u, children, visited))
		}
	}

	return forest
}

func buildReferralNode(u *User, children map[string][]*User, visited map[uuid.UUID]bool) *ReferralNode {
	visited[u.ID] = true
	node := &ReferralNode{
		User:      u.Public(),
		Referrals: []*ReferralNode{},
	}

	for _, child := range children[u.ReferralCode] {
		if visited[child.ID] {
			continue
		}
		node.Referrals = append(node.Referrals, buildReferralNode(child, children, visited))
	}

	return node
}

// ReferralStats summarises a user's direct referrals.
type ReferralStats struct {
	ReferralCode   string        `json:"referralCode"`
	TotalReferrals int           `json:"totalReferrals"`
	ReferredUsers  []*PublicUser `json:"referredUsers"`
}
