package apimodel

// LoginRequest is the front-end login submission.
type LoginRequest struct {
	// Username must match the configured admin username.
	Username string `json:"username"`

	// Password is compared against the configured admin password, or
	// against its bcrypt hash when ADMIN_PASSWORD_HASH is set.
	// Security: Never log or expose this value
	Password string `json:"password"`
}

// CreateSpreadsheetRequest names the spreadsheet to create.
type CreateSpreadsheetRequest struct {
	// Title becomes the spreadsheet's display name in Drive.
	// Required: Yes
	Title string `json:"title"`
}
