package server

func (s *Server) initRoutes() {
	// Open routes
	s.RegisterRouteHandler("GET "+RouteAPIHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPILogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

	// Browsers probe with a bare OPTIONS before cross-origin JSON
	// requests; the CORS middleware answers it.
	s.RegisterRouteHandler("OPTIONS "+RouteAPIPreflight, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	// Session-protected routes
	s.RegisterRouteHandler("POST "+RouteAPILogout, ChainMiddleware(s.LogoutHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIDriveFiles, ChainMiddleware(s.DriveFilesHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISheetMetadata, ChainMiddleware(s.SheetMetadataHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPISheets, ChainMiddleware(s.CreateSheetHandler(), s.AuthAPIMiddleware()...))

	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
}
