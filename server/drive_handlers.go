package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"

	"github.com/jrsteele09/go-drive-proxy/apimodel"
	"github.com/jrsteele09/go-drive-proxy/google"
	"github.com/jrsteele09/go-drive-proxy/internal/utils"
)

const (
	defaultDrivePageSize = int64(100)
	maxDrivePageSize     = int64(1000)

	// driveListFields trims the Drive reply to the metadata the
	// front-end renders.
	driveListFields = "files(id,name,mimeType,modifiedTime,webViewLink)"
)

// DriveFilesHandler proxies the Drive file listing and reshapes the
// reply for the front-end. The optional q and pageSize query
// parameters are forwarded to Drive.
func (s *Server) DriveFilesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := url.Values{}
		query.Set("fields", driveListFields)
		query.Set("pageSize", strconv.FormatInt(drivePageSize(r), 10))
		if q := r.URL.Query().Get("q"); q != "" {
			query.Set("q", q)
		}

		resp, err := s.google.Do(r.Context(), google.Request{
			Method: http.MethodGet,
			URL:    s.config.GetDriveAPIBaseURL() + google.DriveFilesPath + "?" + query.Encode(),
		})
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("listing drive files")
			writeJSONError(w, "upstream_unreachable", err.Error(), http.StatusBadGateway)
			return
		}
		if !isSuccess(resp.StatusCode) {
			writeUpstreamError(w, resp)
			return
		}

		var fileList drive.FileList
		if err := json.Unmarshal(resp.Body, &fileList); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("decoding drive file list")
			writeJSONError(w, "bad_upstream_response", "Could not decode Drive reply", http.StatusBadGateway)
			return
		}

		files := make([]apimodel.DriveFile, 0, len(fileList.Files))
		for _, file := range fileList.Files {
			files = append(files, apimodel.DriveFile{
				ID:           file.Id,
				Name:         file.Name,
				MimeType:     file.MimeType,
				ModifiedTime: file.ModifiedTime,
				WebViewLink:  file.WebViewLink,
			})
		}
		writeJSON(w, http.StatusOK, apimodel.DriveFilesResponse{Files: files})
	}
}

// drivePageSize clamps the requested page size to Drive's limits.
func drivePageSize(r *http.Request) int64 {
	pageSize := utils.ToInt64(r.URL.Query().Get("pageSize"), defaultDrivePageSize)
	if pageSize < 1 || pageSize > maxDrivePageSize {
		return defaultDrivePageSize
	}
	return pageSize
}
