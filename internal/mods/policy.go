package mods

// Authorization over mods is maintainer membership, nothing more. Denials
// for owner-scoped routes surface as 404 rather than 403 so a caller cannot
// learn that a mod id exists under someone else's ownership; handlers are
// responsible for that translation.

// IsMaintainer reports whether userID is in the mod's owner set.
func IsMaintainer(userID string, m *Mod) bool {
	for _, maintainer := range m.Maintainers {
		if maintainer == userID {
			return true
		}
	}
	return false
}

// CanView reports whether userID may read the mod through owner-scoped routes.
func CanView(userID string, m *Mod) bool {
	return IsMaintainer(userID, m)
}

// CanMutate reports whether userID may change the mod.
func CanMutate(userID string, m *Mod) bool {
	return IsMaintainer(userID, m)
}
