package oauth

// MaskToken shortens a token or secret for logs by showing the first 3 and
// last 4 characters. Values of 8 characters or fewer are fully masked.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:3] + "***" + token[len(token)-4:]
}
