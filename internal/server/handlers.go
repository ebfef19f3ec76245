package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ptiller/driveorg/internal/classify"
	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/history"
	"github.com/ptiller/driveorg/internal/organizer"
)

type folderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type processDocumentRequest struct {
	// Text is the extracted document text to classify.
	Text string `json:"text"`

	// DocumentDate optionally overrides date extraction (ISO date).
	DocumentDate string `json:"documentDate,omitempty"`

	// GoogleAccessToken enables folder scanning; without it only the
	// default path is suggested.
	GoogleAccessToken string `json:"googleAccessToken,omitempty"`

	// SelectedParentFolderId skips the suggestion step and files under
	// the chosen top-level folder.
	SelectedParentFolderID string `json:"selectedParentFolderId,omitempty"`
}

type processDocumentResponse struct {
	domain.Document

	SuggestedParentFolder   string       `json:"suggestedParentFolder,omitempty"`
	SuggestedParentFolderID string       `json:"suggestedParentFolderId,omitempty"`
	AvailableParentFolders  []folderInfo `json:"availableParentFolders"`
	CandidatePaths          []string     `json:"candidatePaths,omitempty"`
	Reasoning               string       `json:"reasoning,omitempty"`
	FinalFolderPath         string       `json:"finalFolderPath"`
}

func (s *Server) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	var req processDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "Document text is required")
		return
	}

	cls, fields, title := classify.Analyze(req.Text, req.DocumentDate)
	doc := domain.Document{
		Title:         title,
		Category:      cls.Category,
		Year:          classify.YearOf(fields.Date),
		Vendor:        fields.Vendor,
		InvoiceNumber: fields.InvoiceNumber,
		Total:         fields.Total,
		Currency:      fields.Currency,
		Date:          fields.Date,
		PersonOrOrg:   fields.PersonOrOrg,
		Tags:          classify.BuildTags(cls.Category, fields.Vendor),
		Confidence:    cls.Confidence,
	}

	resp := processDocumentResponse{
		Document:               doc,
		AvailableParentFolders: []folderInfo{},
		FinalFolderPath:        classify.DefaultPath(doc.Category, doc.Year),
	}

	// Without a Drive credential there is nothing to scan.
	if req.GoogleAccessToken == "" {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	principalID := principal(r)

	if req.SelectedParentFolderID != "" {
		roots, err := s.org.RootFolders(r.Context(), req.GoogleAccessToken, principalID)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.AvailableParentFolders = toFolderInfos(roots)
		for _, root := range roots {
			if root.ID == req.SelectedParentFolderID {
				resp.SuggestedParentFolder = root.Name
				resp.SuggestedParentFolderID = root.ID
				resp.FinalFolderPath = organizer.BuildDestination(root.Name, doc.Category, doc.Year)
				break
			}
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	result, err := s.org.SuggestPaths(r.Context(), req.GoogleAccessToken, principalID, doc)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.SuggestedParentFolder = result.SuggestedFolder
	resp.SuggestedParentFolderID = result.SuggestedID
	resp.AvailableParentFolders = toFolderInfos(result.ParentFolders)
	resp.CandidatePaths = result.CandidatePaths
	resp.Reasoning = result.Reasoning
	resp.FinalFolderPath = result.SuggestedPath

	writeJSON(w, http.StatusOK, resp)
}

type uploadDocumentRequest struct {
	// PDFData is a base64 data URI ("data:application/pdf;base64,...").
	PDFData string `json:"pdfData"`

	GoogleAccessToken      string `json:"googleAccessToken,omitempty"`
	Title                  string `json:"title"`
	Category               string `json:"category"`
	Year                   int    `json:"year"`
	SelectedParentFolderID string `json:"selectedParentFolderId,omitempty"`
}

type uploadDocumentResponse struct {
	DriveFileID     string `json:"driveFileId"`
	DriveURL        string `json:"driveUrl"`
	FinalFolderPath string `json:"finalFolderPath"`
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	var req uploadDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	data, err := decodePDFDataURI(req.PDFData)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(w, "Title is required")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		badRequest(w, "Category is required")
		return
	}
	if req.Year < 1900 || req.Year > 2100 {
		badRequest(w, "Year out of range")
		return
	}

	principalID := principal(r)

	var parentName string
	if req.SelectedParentFolderID != "" {
		parentName, err = s.org.ParentFolderName(
			r.Context(), req.GoogleAccessToken, principalID, req.SelectedParentFolderID)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	folderPath := organizer.BuildDestination(parentName, req.Category, req.Year)
	filename := req.Title + ".pdf"

	ref, err := s.org.Upload(r.Context(), req.GoogleAccessToken, principalID,
		folderPath, filename, "application/pdf", data)
	if err != nil {
		writeError(w, err)
		return
	}

	if s.hist != nil {
		record := history.UploadRecord{
			PrincipalID: principalID,
			Title:       req.Title,
			Category:    req.Category,
			FolderPath:  folderPath,
			DriveFileID: ref.ID,
			DriveURL:    ref.WebViewLink,
			UploadedAt:  time.Now().UTC(),
		}
		if err := s.hist.SaveUpload(record); err != nil {
			s.log.Warn("failed to record upload", "err", err, "file", ref.ID)
		}
	}

	writeJSON(w, http.StatusOK, uploadDocumentResponse{
		DriveFileID:     ref.ID,
		DriveURL:        ref.WebViewLink,
		FinalFolderPath: folderPath,
	})
}

type foldersResponse struct {
	Folders []domain.FolderNode `json:"folders"`
	Paths   []string            `json:"paths"`
}

// handleFolders runs a fresh scan. The bearer token doubles as the Drive
// credential here since the request carries no body.
func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	depth := s.scanCfg.MaxDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			badRequest(w, "Invalid depth parameter")
			return
		}
		depth = parsed
	}

	result, err := s.org.Scan(r.Context(), principal(r), depth)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := foldersResponse{Folders: result.Folders, Paths: result.Paths}
	if resp.Folders == nil {
		resp.Folders = []domain.FolderNode{}
	}
	if resp.Paths == nil {
		resp.Paths = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.org.ClearCache(principal(r))
	w.WriteHeader(http.StatusNoContent)
}

func toFolderInfos(folders []domain.FolderNode) []folderInfo {
	infos := make([]folderInfo, 0, len(folders))
	for _, f := range folders {
		infos = append(infos, folderInfo{ID: f.ID, Name: f.Name, Path: f.Path})
	}
	return infos
}

// decodePDFDataURI decodes a "data:application/pdf;base64," data URI.
func decodePDFDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:application/pdf") {
		return nil, errInvalidDataURI
	}
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 {
		return nil, errMissingBase64
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errBadBase64
	}
	return data, nil
}

var (
	errInvalidDataURI = errors.New("Invalid data URI format - expected PDF")
	errMissingBase64  = errors.New("Invalid data URI: missing base64 data")
	errBadBase64      = errors.New("Invalid data URI: malformed base64 data")
)
