package config

type GoogleConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRefreshToken() string
	GetGoogleTokenURL() string
	GetDriveAPIBaseURL() string
	GetSheetsAPIBaseURL() string
}

type Google struct{}

var _ GoogleConfig = Google{}

func (Google) GetGoogleClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (Google) GetGoogleClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}

func (Google) GetGoogleRefreshToken() string {
	return GetEnv("GOOGLE_REFRESH_TOKEN", "")
}

// GetGoogleTokenURL overrides the token endpoint. Empty means the
// standard Google endpoint.
func (Google) GetGoogleTokenURL() string {
	return GetEnv("GOOGLE_TOKEN_URL", "")
}

func (Google) GetDriveAPIBaseURL() string {
	return GetEnv("DRIVE_API_BASE_URL", "https://www.googleapis.com")
}

func (Google) GetSheetsAPIBaseURL() string {
	return GetEnv("SHEETS_API_BASE_URL", "https://sheets.googleapis.com")
}
