package catalog

import (
	"net/http"

	"github.com/hupe1980/qconnect/core"
)

// CreateAssistant creates an assistant.
func CreateAssistant() *core.Operation {
	return &core.Operation{
		Name:        "CreateAssistant",
		Command:     "create-assistant",
		Description: "Creates an assistant",
		Method:      http.MethodPost,
		Path:        "/assistants",
		Fields: []core.Field{
			pipeline(required(bodyString("Name", "name", "Name of the assistant"))),
			required(bodyEnum("Type", "type", "Type of assistant", "AGENT")),
			bodyString("Description", "description", "Description of the assistant"),
			clientToken(),
			tags(),
		},
		Composites: []core.Composite{{
			Name: "ServerSideEncryptionConfiguration",
			Key:  "serverSideEncryptionConfiguration",
			Fields: []core.Field{
				bodyString("ServerSideEncryptionConfiguration_KmsKeyId", "kmsKeyId", "Customer managed KMS key"),
			},
		}},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "Assistant", Key: "assistant"}},
		DefaultSelect:    "Assistant",
		PassThroughField: "Name",
	}
}

// GetAssistant retrieves information about an assistant.
func GetAssistant() *core.Operation {
	return &core.Operation{
		Name:        "GetAssistant",
		Command:     "get-assistant",
		Description: "Retrieves information about an assistant",
		Method:      http.MethodGet,
		Path:        "/assistants/{assistantId}",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", true),
		},
		Outputs:          []core.Output{{Name: "Assistant", Key: "assistant"}},
		DefaultSelect:    "Assistant",
		PassThroughField: "AssistantId",
	}
}

// PutFeedback submits feedback on a recommendation or query result.
func PutFeedback() *core.Operation {
	return &core.Operation{
		Name:        "PutFeedback",
		Command:     "put-feedback",
		Description: "Provides feedback against the specified assistant for the specified target",
		Method:      http.MethodPut,
		Path:        "/assistants/{assistantId}/feedback",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", true),
			required(bodyString("TargetId", "targetId", "Identifier of the recommendation or result")),
			required(bodyEnum("TargetType", "targetType", "Type of the feedback target", "RECOMMENDATION", "RESULT")),
		},
		Composites: []core.Composite{{
			Name: "ContentFeedback",
			Key:  "contentFeedback",
			Fields: []core.Field{
				required(bodyEnum("ContentFeedback_GenerativeContentFeedbackData_Relevance", "generativeContentFeedbackData.relevance", "Relevance of the generated content", "HELPFUL", "NOT_HELPFUL")),
			},
		}},
		Mutating: true,
		Outputs: []core.Output{
			{Name: "AssistantArn", Key: "assistantArn"},
			{Name: "AssistantId", Key: "assistantId"},
			{Name: "ContentFeedback", Key: "contentFeedback"},
			{Name: "TargetId", Key: "targetId"},
			{Name: "TargetType", Key: "targetType"},
		},
		DefaultSelect:    core.WholeResponse,
		PassThroughField: "AssistantId",
	}
}
