package overlap

import "strings"

// MutualFriends returns every ID followed by both a and b. A login that is not
// in accounts contributes an empty follow set.
func MutualFriends(accounts []NamedAccount, a, b string) FollowSet {
	return followsOf(accounts, a).Intersect(followsOf(accounts, b))
}

func followsOf(accounts []NamedAccount, login string) FollowSet {
	for _, acct := range accounts {
		if strings.EqualFold(acct.Login, login) {
			return acct.friends
		}
	}
	return FollowSet{}
}
