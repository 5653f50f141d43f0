package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerResponse struct {
	Message string `json:"message"`
}

// loginRequest accepts the account's username or email as identifier.
type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// loginResponse mirrors what the browser client persists alongside the token.
type loginResponse struct {
	Token      string `json:"token"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}
