package model

// Account 记录用户绑定的外部身份。
// 下划线字段名沿用存量 accounts.json 的格式，不要改。
type Account struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	Type              string `json:"type"`
	Provider          string `json:"provider"`
	ProviderAccountID string `json:"providerAccountId"`
	RefreshToken      string `json:"refresh_token,omitempty"`
	AccessToken       string `json:"access_token,omitempty"`
	ExpiresAt         int64  `json:"expires_at,omitempty"`
	TokenType         string `json:"token_type,omitempty"`
	Scope             string `json:"scope,omitempty"`
	IDToken           string `json:"id_token,omitempty"`
	SessionState      string `json:"session_state,omitempty"`
}
