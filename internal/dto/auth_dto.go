package dto

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest carries the credential pair. Username and email are both
// optional but at least one must be present; email wins when both are sent.
type SigninRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ClaimDetails is the profile snapshot embedded in the token.
type ClaimDetails struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

// Claims is the identity payload carried by a signed token.
type Claims struct {
	ID       uint         `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Roles    []string     `json:"roles"`
	Details  ClaimDetails `json:"details"`
}

type SigninResponse struct {
	Token string `json:"token"`
	User  Claims `json:"user"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
