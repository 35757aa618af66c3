package overlap

func acct(login string, friends ...int64) NamedAccount {
	return NewNamedAccount(login, "", 0, friends)
}

// candidates is the A:{1,2} B:{2,3} C:{2} fixture.
func candidates() []NamedAccount {
	return []NamedAccount{
		acct("A", 1, 2),
		acct("B", 2, 3),
		acct("C", 2),
	}
}
