package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	input  []*genai.Content
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.input = contents
	f.config = config
	return f.resp, f.err
}

func reply(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGemini_Generate(t *testing.T) {
	fake := &fakeModels{resp: reply(`{"is_sufficient":`, "", ` false}`)}
	g := newGemini(fake, "gemini-2.5-flash", nil)

	out, err := g.Generate(context.Background(), "be brief", "evaluate this")

	require.NoError(t, err)
	assert.Equal(t, "{\"is_sufficient\":\nfalse}", out)
	assert.Equal(t, "gemini-2.5-flash", fake.model)
	require.NotNil(t, fake.config.SystemInstruction)
	assert.Equal(t, "be brief", fake.config.SystemInstruction.Parts[0].Text)
	require.Len(t, fake.input, 1)
	assert.Equal(t, "evaluate this", fake.input[0].Parts[0].Text)
}

func TestGemini_GenerateErrors(t *testing.T) {
	boom := errors.New("quota")

	tests := []struct {
		name   string
		fake   *fakeModels
		prompt string
	}{
		{"empty prompt", &fakeModels{resp: reply("x")}, "  "},
		{"transport", &fakeModels{err: boom}, "p"},
		{"nil response", &fakeModels{}, "p"},
		{"empty reply", &fakeModels{resp: reply("  ")}, "p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGemini(tt.fake, "m", nil).Generate(context.Background(), "", tt.prompt)
			assert.Error(t, err)
		})
	}
}

func TestGemini_NilReceiver(t *testing.T) {
	var g *Gemini
	_, err := g.Generate(context.Background(), "", "p")
	assert.Error(t, err)
	assert.Equal(t, "", g.Model())
}
