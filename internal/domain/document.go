package domain

// Document is the metadata the classifier produces and the suggestion
// collaborator consumes.
type Document struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Year          int      `json:"year"`
	Vendor        string   `json:"vendor,omitempty"`
	InvoiceNumber string   `json:"invoiceNumber,omitempty"`
	Total         float64  `json:"total,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Date          string   `json:"date,omitempty"` // ISO date (YYYY-MM-DD)
	PersonOrOrg   string   `json:"personOrOrg,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Confidence    float64  `json:"confidence"`
}

// OrganizeResult is what the progressive scan produces for one document:
// the suggested destination plus enough context for the caller to choose
// a different one.
type OrganizeResult struct {
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Year            int          `json:"year"`
	SuggestedPath   string       `json:"suggestedPath"`
	SuggestedFolder string       `json:"suggestedParentFolder,omitempty"`
	SuggestedID     string       `json:"suggestedParentFolderId,omitempty"`
	Reasoning       string       `json:"reasoning,omitempty"`
	ParentFolders   []FolderNode `json:"availableParentFolders"`
	CandidatePaths  []string     `json:"candidatePaths"`
}
