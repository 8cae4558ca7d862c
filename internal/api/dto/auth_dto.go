package dto

type UserDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	IsAdmin bool   `json:"is_admin"`
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

type LoginResponse struct {
	AccessToken TokenInfo `json:"access_token"`
	User        UserDTO   `json:"user"`
}

type ForgotPasswordDTO struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileDTO struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type AuthProbeResponse struct {
	Ok bool `json:"ok"`
}
