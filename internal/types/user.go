package types

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
