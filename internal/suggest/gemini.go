package suggest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ptiller/driveorg/internal/domain"
)

const (
	// DefaultModel is the Gemini model used for folder matching
	DefaultModel = "gemini-2.5-flash"
	// DefaultConfidenceThreshold is the minimum confidence to accept a match
	DefaultConfidenceThreshold = 0.7
)

// Gemini asks a Gemini model which existing folder fits the document.
type Gemini struct {
	model     *genai.GenerativeModel
	threshold float64
}

// NewGemini creates a Gemini-backed suggester.
func NewGemini(ctx context.Context, apiKey, model string, threshold float64) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is empty", domain.ErrCredential)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Gemini{model: client.GenerativeModel(model), threshold: threshold}, nil
}

// SuggestParent implements Suggester.
func (g *Gemini) SuggestParent(ctx context.Context, req Request) (*Suggestion, error) {
	if len(req.RootFolders) == 0 {
		return nil, nil
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini folder matching: %w", err)
	}

	return matchReply(collectText(resp), req.RootFolders, g.threshold), nil
}

// buildPrompt renders the folder-matching prompt from the document and the
// user's top-level folders.
func buildPrompt(req Request) string {
	var list strings.Builder
	for _, f := range req.RootFolders {
		list.WriteString("- ")
		list.WriteString(f.Name)
		list.WriteString("\n")
	}

	return fmt.Sprintf(`You are helping organize a document in Google Drive.

Document Information:
- Type: %s
- Title: %s

The user has these existing top-level folders in their Google Drive:
%s
Task: Determine which folder (if any) best matches this document type.

Instructions:
1. Consider semantic relationships (e.g., "invoices" might belong in "Finance", "Business", or "Work")
2. Think about how users typically organize documents (e.g., tax documents go under "Finance", contracts under "Legal" or "Business")
3. Only suggest a match if you're confident it's appropriate
4. If no folder is a good match, respond with "NO_MATCH"

Format your response as:
FOLDER: [exact folder name from the list above, or NO_MATCH]
CONFIDENCE: [0.0 to 1.0, where 1.0 is extremely confident]
REASONING: [brief explanation of why this folder is appropriate]`,
		req.Category, req.Title, list.String())
}

// matchReply parses the FOLDER/CONFIDENCE/REASONING reply and maps it back
// onto a scanned folder. Anything unconvincing becomes a nil suggestion.
func matchReply(reply string, rootFolders []domain.FolderNode, threshold float64) *Suggestion {
	var (
		folderName string
		confidence float64
		reasoning  string
	)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "FOLDER:"):
			folderName = strings.TrimSpace(strings.TrimPrefix(line, "FOLDER:"))
		case strings.HasPrefix(line, "CONFIDENCE:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:"))
			confidence, _ = strconv.ParseFloat(raw, 64)
		case strings.HasPrefix(line, "REASONING:"):
			reasoning = strings.TrimSpace(strings.TrimPrefix(line, "REASONING:"))
		}
	}

	if folderName == "" || strings.EqualFold(folderName, "NO_MATCH") || confidence < threshold {
		return nil
	}

	for _, f := range rootFolders {
		if strings.EqualFold(f.Name, folderName) {
			return &Suggestion{
				FolderID:   f.ID,
				FolderName: f.Name,
				FolderPath: f.Path,
				Confidence: confidence,
				Reasoning:  reasoning,
			}
		}
	}
	// The model named a folder that is not in the scanned set.
	return nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

var _ Suggester = (*Gemini)(nil)
