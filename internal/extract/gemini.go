package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Prompt is the fixed instruction sent with every document. The answer must be
// determined from one of three cues in the source: bold emphasis, an explicit
// "Ans. x" marker, or an answer key at the end.
const Prompt = `You are an expert data extraction system with native multimodal understanding. You will be given a file (PDF) that contains a quiz. Your only task is to analyze the entire document's layout, formatting, and text to extract all the questions and return them as a single, valid JSON array.

Each JSON object in the array must have exactly three keys:
1. "question": A string containing the full, complete text of the question.
2. "options": An array of strings, where each string is a possible option.
3. "answer": A string containing the full and exact text of the correct option.

You must intelligently determine the correct answer for each question by looking for one of three patterns in the source document:
- The correct option's text is formatted in **bold**.
- An answer is explicitly given after the options, like "Ans. a".
- The answers are listed in a table or key at the end of the document.

CRITICAL RULES:
- The value for the "answer" key MUST be an exact match to one of the strings in the "options" array.
- Clean the output text: Do not include question numbers (like "1.") or option letters (like "a)") in the final JSON strings.
- If a question is incomplete, malformed, or you cannot confidently determine the correct answer, you MUST skip it entirely.
- Your final output must ONLY be the JSON array, with no other text, comments, or markdown formatting like ` + "```json" + `.`

const (
	// DefaultModel matches the model the product was tuned against.
	DefaultModel = "gemini-2.5-flash"
	// maxInlineSize is the ceiling for sending the document inline; larger
	// files go through the File API.
	maxInlineSize = 20 * 1024 * 1024
)

// GeminiClient implements Extractor against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient dials the Gemini API. An empty key is ErrNoCredential so
// callers can fail at startup rather than on first upload.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredential
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Close() error { return c.client.Close() }

// Extract sends the document plus the fixed instruction and parses the reply.
// One attempt only: a failed call surfaces immediately and the user retries by
// re-uploading.
func (c *GeminiClient) Extract(ctx context.Context, filename string, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, &Error{Cause: "empty document"}
	}

	parts := []genai.Part{genai.Text(Prompt)}
	if len(data) <= maxInlineSize {
		parts = append(parts, genai.Blob{MIMEType: mimeType(filename), Data: data})
	} else {
		file, err := c.client.UploadFile(ctx, "", bytes.NewReader(data), &genai.UploadFileOptions{
			DisplayName: filename,
			MIMEType:    mimeType(filename),
		})
		if err != nil {
			return Result{}, &Error{Cause: "document upload to extraction service failed", Err: err}
		}
		defer func() {
			if err := c.client.DeleteFile(ctx, file.Name); err != nil {
				log.Printf("extract: delete uploaded file %s: %v", file.Name, err)
			}
		}()
		parts = append(parts, genai.FileData{URI: file.URI})
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return Result{}, &Error{Cause: "extraction service unreachable", Err: err}
	}
	raw := collectText(resp)
	if raw == "" {
		return Result{}, &Error{Cause: "extraction service returned no content"}
	}

	res, err := ParseReply(raw)
	if err != nil {
		return Result{}, err
	}
	if len(res.Questions) == 0 {
		return Result{}, &Error{Cause: "no usable questions found in document", Raw: raw}
	}
	if res.Dropped > 0 {
		log.Printf("extract: dropped %d invalid record(s), kept %d", res.Dropped, len(res.Questions))
	}
	return res, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func mimeType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/pdf"
}
