package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Health
	RouteAPIHealth = "/api/health"

	// Auth Routes - Login & Logout
	RouteAPILogin  = "/api/login"
	RouteAPILogout = "/api/logout"

	// Google Drive Routes
	RouteAPIDriveFiles = "/api/drive/files"

	// Google Sheets Routes
	RouteAPISheets         = "/api/sheets"
	RouteAPISheetMetadata  = "/api/sheets/{spreadsheetId}"

	// CORS preflight (patterns)
	RouteAPIPreflight = "/api/"
)
