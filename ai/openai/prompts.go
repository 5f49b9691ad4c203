package openai

import "github.com/tmc/langchaingo/llms/openai"

// classificationPrompt is the fixed system instruction sent with every tweet.
const classificationPrompt = "A tweet will be provided. Respond with a JSON object with a single field " +
	"`political` that is a boolean. The boolean should be 'true' if the tweet could be described as " +
	"political, and 'false' otherwise. Tweets that simply discuss one's identity are not political."

// classificationResponseFormat constrains the model to {"political": <bool>}
// on servers that support structured output.
var classificationResponseFormat = &openai.ResponseFormat{
	Type: "json_schema",
	JSONSchema: &openai.ResponseFormatJSONSchema{
		Name:   "political",
		Strict: true,
		Schema: &openai.ResponseFormatJSONSchemaProperty{
			Type: "object",
			Properties: map[string]*openai.ResponseFormatJSONSchemaProperty{
				"political": {
					Type:        "boolean",
					Description: "true if the tweet could be described as political",
				},
			},
			Required:             []string{"political"},
			AdditionalProperties: false,
		},
	},
}
