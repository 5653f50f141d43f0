package handler

type updateProfileRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,email"`
}

type profileResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

type uploadAvatarResponse struct {
	Message    string `json:"message"`
	ProfilePic string `json:"profilePic"`
}
