package apimodel

// LoginResponse carries the opaque session token the front-end replays
// as "Authorization: Bearer <token>" on subsequent /api calls.
type LoginResponse struct {
	// Token is an opaque random string, not a JWT.
	Token string `json:"token"`

	// ExpiresIn is the session lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
}

// DriveFile is the subset of a Drive file's metadata the front-end
// renders in its file picker.
type DriveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
}

// DriveFilesResponse lists the files visible to the configured Google
// account.
type DriveFilesResponse struct {
	Files []DriveFile `json:"files"`
}

// SheetInfo describes one sheet (tab) within a spreadsheet.
type SheetInfo struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
	Index   int64  `json:"index"`
}

// SpreadsheetMetadata is the reshaped Sheets metadata reply.
type SpreadsheetMetadata struct {
	SpreadsheetID  string      `json:"spreadsheetId"`
	Title          string      `json:"title"`
	Sheets         []SheetInfo `json:"sheets"`
	SpreadsheetURL string      `json:"spreadsheetUrl,omitempty"`
}

// CreateSpreadsheetResponse confirms a newly created spreadsheet.
type CreateSpreadsheetResponse struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	Title          string `json:"title"`
	SpreadsheetURL string `json:"spreadsheetUrl,omitempty"`
}
