package dto

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role"`
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

type LoginResponse struct {
	Token        string   `json:"token"`
	SessionToken string   `json:"session_token"`
	User         UserInfo `json:"user"`
}

type LogoutRequest struct {
	SessionToken string `json:"session_token" binding:"required"`
}
