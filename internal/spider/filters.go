package spider

type Filters struct {
	MaxFriends        int
	SkipOrganizations bool
}

// FriendLimitReached reports whether n following IDs is already at the cap.
func (f *Filters) FriendLimitReached(n int) bool {
	return f.MaxFriends > 0 && n >= f.MaxFriends
}

func (f *Filters) Cap(ids []int64) []int64 {
	if f.MaxFriends > 0 && len(ids) > f.MaxFriends {
		return ids[:f.MaxFriends]
	}
	return ids
}

func (f *Filters) PassesAccountFilter(p *Profile) bool {
	if f.SkipOrganizations && p.IsOrganization {
		return false
	}
	return true
}
