package dto

// CopyForm carries the multi-step campaign form. The fields mirror the web
// UI steps; everything is optional except the channel so half-filled forms
// still produce usable prompts.
type CopyForm struct {
	MarketingChannel string   `json:"marketingChannel" validate:"required"`
	BrandVoice       string   `json:"brandVoice"`
	Emotion          string   `json:"emotion"`
	CampaignGoal     string   `json:"campaignGoal"`
	ProductName      string   `json:"productName"`
	ProductFeatures  []string `json:"productFeatures"`
	CustomerPains    []string `json:"customerPains"`
	CustomerDesires  []string `json:"customerDesires"`
	Keywords         []string `json:"keywords"`
	MainIdea         string   `json:"mainIdea"`
}

type GenerateCopyResponse struct {
	Prompt string `json:"prompt"`
	Copy   string `json:"copy"`
}

type GenerateMainIdeaResponse struct {
	MainIdea string `json:"mainIdea"`
}
