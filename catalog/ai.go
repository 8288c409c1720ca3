package catalog

import (
	"net/http"

	"github.com/hupe1980/qconnect/core"
)

// CreateAIAgent creates an AI agent for an assistant.
func CreateAIAgent() *core.Operation {
	return &core.Operation{
		Name:        "CreateAIAgent",
		Command:     "create-ai-agent",
		Description: "Creates an AI agent",
		Method:      http.MethodPost,
		Path:        "/assistants/{assistantId}/aiagents",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", true),
			required(bodyString("Name", "name", "Name of the AI agent")),
			required(bodyEnum("Type", "type", "Type of the AI agent", "MANUAL_SEARCH", "ANSWER_RECOMMENDATION", "SELF_SERVICE")),
			required(bodyEnum("VisibilityStatus", "visibilityStatus", "Visibility of the AI agent", "SAVED", "PUBLISHED")),
			required(bodyRecord("Configuration", "configuration", "Agent configuration keyed by agent type")),
			bodyString("Description", "description", "Description of the AI agent"),
			clientToken(),
			tags(),
		},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "AiAgent", Key: "aiAgent"}},
		DefaultSelect:    "AiAgent",
		PassThroughField: "AssistantId",
	}
}

// UpdateAIPrompt updates an AI prompt.
func UpdateAIPrompt() *core.Operation {
	return &core.Operation{
		Name:        "UpdateAIPrompt",
		Command:     "update-ai-prompt",
		Description: "Updates an AI prompt",
		Method:      http.MethodPost,
		Path:        "/assistants/{assistantId}/aiprompts/{aiPromptId}",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", false),
			pathParam("AIPromptId", "aiPromptId", true),
			required(bodyEnum("VisibilityStatus", "visibilityStatus", "Visibility of the AI prompt", "SAVED", "PUBLISHED")),
			bodyString("Description", "description", "Description of the AI prompt"),
			bodyString("ModelId", "modelId", "Identifier of the model used by the prompt"),
			clientToken(),
		},
		Composites: []core.Composite{{
			Name: "TemplateConfiguration",
			Key:  "templateConfiguration",
			Fields: []core.Field{
				bodyString("TemplateConfiguration_TextFullAIPromptEditTemplateConfiguration_Text", "textFullAIPromptEditTemplateConfiguration.text", "Full prompt template text"),
			},
		}},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "AiPrompt", Key: "aiPrompt"}},
		DefaultSelect:    "AiPrompt",
		PassThroughField: "AIPromptId",
	}
}
