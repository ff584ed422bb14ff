package handler

// errorResponse is the standard error envelope returned on 4xx/5xx JSON responses.
type errorResponse struct {
	Error string `json:"error"`
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// registerRequest leaves the password to the service, which reports a taken
// username before judging the password.
type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=64"`
	Password string `json:"password" form:"password"`
}

// searchRequest leaves keyword optional: an empty keyword matches every sentence.
type searchRequest struct {
	URL     string `json:"url"     form:"url"     validate:"required"`
	Keyword string `json:"keyword" form:"keyword"`
}

type searchErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type sessionResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
}

const (
	msgRegistered     = "User registered successfully."
	msgUserExists     = "User already exists."
	msgLoggedIn       = "Login successful!"
	msgUserNotFound   = "User not found."
	msgBadCredentials = "Invalid credentials."
	msgLoggedOut      = "Logged out successfully."
	msgFetchFailed    = "Error fetching the URL. Please check if the URL is valid."
	msgInvalidPayload = "invalid payload"
)
