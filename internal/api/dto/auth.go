package dto

// AuthorizeRequest represents the authorization request
type AuthorizeRequest struct {
	Username string `json:"username" binding:"required"` // user email
	Password string `json:"password" binding:"required"`
}

// AuthorizeResponse represents the authorization response
type AuthorizeResponse struct {
	Code string `json:"code"`
}

// TokenRequest represents the token request
type TokenRequest struct {
	GrantType string `json:"grant_type" binding:"required"` // "authorization_code" or "password"
	Code      string `json:"code"`                          // For authorization_code
	Username  string `json:"username"`                      // For password
	Password  string `json:"password"`                      // For password
}

// TokenResponse represents the token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // In seconds
}
