package catalog

import (
	"net/http"

	"github.com/hupe1980/qconnect/core"
)

// CreateMessageTemplate creates an email or SMS message template.
func CreateMessageTemplate() *core.Operation {
	return &core.Operation{
		Name:        "CreateMessageTemplate",
		Command:     "create-message-template",
		Description: "Creates a message template in a knowledge base",
		Method:      http.MethodPost,
		Path:        "/knowledgeBases/{knowledgeBaseId}/messageTemplates",
		Fields: []core.Field{
			pathParam("KnowledgeBaseId", "knowledgeBaseId", true),
			required(bodyEnum("ChannelSubtype", "channelSubtype", "Channel the template is for", "EMAIL", "SMS")),
			bodyString("Name", "name", "Name of the template"),
			bodyString("Description", "description", "Description of the template"),
			bodyString("Language", "language", "Language code, e.g. en_US"),
			bodyRecord("DefaultAttribute", "defaultAttributes", "Default values for template attributes"),
			clientToken(),
			tags(),
		},
		Composites: []core.Composite{
			messageTemplateContent(),
			{
				Name: "GroupingConfiguration",
				Key:  "groupingConfiguration",
				Fields: []core.Field{
					bodyString("GroupingConfiguration_Criterion", "criteria", "Grouping criterion"),
					bodyList("GroupingConfiguration_Value", "values", "Grouping values"),
				},
			},
		},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "MessageTemplate", Key: "messageTemplate"}},
		DefaultSelect:    "MessageTemplate",
		PassThroughField: "KnowledgeBaseId",
	}
}

// UpdateMessageTemplate updates the $LATEST content of a message template.
func UpdateMessageTemplate() *core.Operation {
	return &core.Operation{
		Name:        "UpdateMessageTemplate",
		Command:     "update-message-template",
		Description: "Updates the content of a message template",
		Method:      http.MethodPost,
		Path:        "/knowledgeBases/{knowledgeBaseId}/messageTemplates/{messageTemplateId}",
		Fields: []core.Field{
			pathParam("KnowledgeBaseId", "knowledgeBaseId", false),
			pathParam("MessageTemplateId", "messageTemplateId", true),
			bodyString("Language", "language", "Language code, e.g. en_US"),
			bodyRecord("DefaultAttribute", "defaultAttributes", "Default values for template attributes"),
		},
		Composites:       []core.Composite{messageTemplateContent()},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "MessageTemplate", Key: "messageTemplate"}},
		DefaultSelect:    "MessageTemplate",
		PassThroughField: "MessageTemplateId",
	}
}

// ActivateMessageTemplate activates a version of a message template.
func ActivateMessageTemplate() *core.Operation {
	return &core.Operation{
		Name:        "ActivateMessageTemplate",
		Command:     "activate-message-template",
		Description: "Activates a specific version of a message template",
		Method:      http.MethodPost,
		Path:        "/knowledgeBases/{knowledgeBaseId}/messageTemplates/{messageTemplateId}/activate",
		Fields: []core.Field{
			pathParam("KnowledgeBaseId", "knowledgeBaseId", false),
			pathParam("MessageTemplateId", "messageTemplateId", true),
			required(bodyInt("VersionNumber", "versionNumber", "Version number to activate")),
		},
		Mutating: true,
		Outputs: []core.Output{
			{Name: "MessageTemplateArn", Key: "messageTemplateArn"},
			{Name: "MessageTemplateId", Key: "messageTemplateId"},
			{Name: "VersionNumber", Key: "versionNumber"},
		},
		DefaultSelect:    core.WholeResponse,
		PassThroughField: "MessageTemplateId",
	}
}
