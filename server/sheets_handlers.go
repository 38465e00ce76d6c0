package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/sheets/v4"

	"github.com/jrsteele09/go-drive-proxy/apimodel"
	"github.com/jrsteele09/go-drive-proxy/google"
	"github.com/jrsteele09/go-drive-proxy/internal/utils"
)

// sheetMetadataFields trims the Sheets reply to grid-level metadata,
// leaving cell data out.
const sheetMetadataFields = "spreadsheetId,spreadsheetUrl,properties.title,sheets.properties"

// SheetMetadataHandler proxies spreadsheet metadata and reshapes the
// reply for the front-end.
func (s *Server) SheetMetadataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spreadsheetID := r.PathValue("spreadsheetId")
		if spreadsheetID == "" {
			writeJSONError(w, "invalid_request", "spreadsheetId is required", http.StatusBadRequest)
			return
		}

		query := url.Values{}
		query.Set("fields", sheetMetadataFields)

		resp, err := s.google.Do(r.Context(), google.Request{
			Method: http.MethodGet,
			URL:    s.config.GetSheetsAPIBaseURL() + google.SpreadsheetsPath + "/" + url.PathEscape(spreadsheetID) + "?" + query.Encode(),
		})
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("fetching spreadsheet metadata")
			writeJSONError(w, "upstream_unreachable", err.Error(), http.StatusBadGateway)
			return
		}
		if !isSuccess(resp.StatusCode) {
			writeUpstreamError(w, resp)
			return
		}

		var spreadsheet sheets.Spreadsheet
		if err := json.Unmarshal(resp.Body, &spreadsheet); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("decoding spreadsheet metadata")
			writeJSONError(w, "bad_upstream_response", "Could not decode Sheets reply", http.StatusBadGateway)
			return
		}

		sheetInfos := make([]apimodel.SheetInfo, 0, len(spreadsheet.Sheets))
		for _, sheet := range spreadsheet.Sheets {
			properties := utils.Value(sheet.Properties)
			sheetInfos = append(sheetInfos, apimodel.SheetInfo{
				SheetID: properties.SheetId,
				Title:   properties.Title,
				Index:   properties.Index,
			})
		}
		writeJSON(w, http.StatusOK, apimodel.SpreadsheetMetadata{
			SpreadsheetID:  spreadsheet.SpreadsheetId,
			Title:          utils.Value(spreadsheet.Properties).Title,
			Sheets:         sheetInfos,
			SpreadsheetURL: spreadsheet.SpreadsheetUrl,
		})
	}
}

// CreateSheetHandler creates a spreadsheet with the submitted title.
func (s *Server) CreateSheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var createReq apimodel.CreateSpreadsheetRequest
		if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse JSON body", http.StatusBadRequest)
			return
		}
		if createReq.Title == "" {
			writeJSONError(w, "invalid_request", "title is required", http.StatusBadRequest)
			return
		}

		payload, err := json.Marshal(&sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: createReq.Title},
		})
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("encoding spreadsheet request")
			writeJSONError(w, "internal_error", "Failed to encode upstream request", http.StatusInternalServerError)
			return
		}

		resp, err := s.google.Do(r.Context(), google.Request{
			Method: http.MethodPost,
			URL:    s.config.GetSheetsAPIBaseURL() + google.SpreadsheetsPath,
			Header: http.Header{"Content-Type": []string{"application/json"}},
			Body:   payload,
		})
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("creating spreadsheet")
			writeJSONError(w, "upstream_unreachable", err.Error(), http.StatusBadGateway)
			return
		}
		if !isSuccess(resp.StatusCode) {
			writeUpstreamError(w, resp)
			return
		}

		var spreadsheet sheets.Spreadsheet
		if err := json.Unmarshal(resp.Body, &spreadsheet); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("decoding created spreadsheet")
			writeJSONError(w, "bad_upstream_response", "Could not decode Sheets reply", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusCreated, apimodel.CreateSpreadsheetResponse{
			SpreadsheetID:  spreadsheet.SpreadsheetId,
			Title:          utils.Value(spreadsheet.Properties).Title,
			SpreadsheetURL: spreadsheet.SpreadsheetUrl,
		})
	}
}
