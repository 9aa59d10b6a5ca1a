package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// GeminiClient wraps the Vertex AI Gemini API for intent extraction
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Vertex AI client for the given project
func NewGeminiClient(ctx context.Context, projectID, location string) (*GeminiClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("google cloud project not set")
	}
	if location == "" {
		location = "us-central1"
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")

	// Low temperature keeps intent extraction consistent
	model.SetTemperature(0.1)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(512)

	return &GeminiClient{client: client, model: model}, nil
}

// ExtractIntent asks Gemini to translate a question into the intent JSON
func (g *GeminiClient) ExtractIntent(ctx context.Context, question string) (*Intent, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildIntentPrompt(question)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no response candidates returned")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	return parseIntent(raw)
}

// Close closes the underlying Vertex AI client
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func buildIntentPrompt(question string) string {
	var sb strings.Builder

	sb.WriteString("Eres un analista de datos de recursos humanos. Traduce la pregunta del usuario a un intent JSON.\n\n")
	sb.WriteString("Pregunta: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString("Responde SOLO con un objeto JSON con esta forma:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "query_type": "<count|list|average|sum|max|min>",` + "\n")
	sb.WriteString(`  "entity": "employee",` + "\n")
	sb.WriteString(`  "target_field": "<salary o vacío>",` + "\n")
	sb.WriteString(`  "explanation": "<explicación corta en español>",` + "\n")
	sb.WriteString(`  "filters": {` + "\n")
	sb.WriteString(`    "department": "<nombre de departamento o vacío>",` + "\n")
	sb.WriteString(`    "status": "<Activo|Retirado o vacío>",` + "\n")
	sb.WriteString(`    "gender": "<Masculino|Femenino o vacío>",` + "\n")
	sb.WriteString(`    "is_recent": <true si pregunta por ingresos del último mes>,` + "\n")
	sb.WriteString(`    "is_birthday_month": <true si pregunta por cumpleaños de este mes>` + "\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")

	return sb.String()
}

var validQueryTypes = map[string]bool{
	"count": true, "list": true, "average": true, "sum": true, "max": true, "min": true,
}

// parseIntent extracts the intent JSON from the model response, tolerating
// surrounding prose
func parseIntent(response string) (*Intent, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var intent Intent
	if err := json.Unmarshal([]byte(response[start:end+1]), &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intent: %w", err)
	}

	if !validQueryTypes[intent.QueryType] {
		return nil, fmt.Errorf("unsupported query type %q", intent.QueryType)
	}
	if intent.Entity == "" {
		intent.Entity = "employee"
	}
	return &intent, nil
}
