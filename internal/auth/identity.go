package auth

// ExternalIdentity is the normalized account profile returned by an OAuth
// provider after a successful code exchange. It contains facts only, no
// decisions, and is never persisted.
type ExternalIdentity struct {
	Provider       string // e.g. "github", "google"
	ProviderUserID string // provider-scoped unique user identifier
	LoginHandle    string // short handle, e.g. the GitHub login
	DisplayName    string // human-readable name, may be empty
	AvatarURL      string
	ProfileURL     string
}

// UserData is the payload carried by a session token. Any payload that
// verifies against the signing key is trusted as-is; there is no server-side
// session store.
type UserData struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// UserData maps an identity to the session payload. The user id is the
// provider login handle, which is what mod maintainer lists reference.
func (i ExternalIdentity) UserData() UserData {
	userID := i.LoginHandle
	if userID == "" {
		userID = i.ProviderUserID
	}

	return UserData{
		UserID:   userID,
		UserName: i.DisplayName,
	}
}
