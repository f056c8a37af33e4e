package agent

// ValidIdentifier reports whether id is a well-formed user identifier:
// exactly four ASCII digits. The boundary layer rejects anything else
// before a session is created.
func ValidIdentifier(id string) bool {
	if len(id) != 4 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
