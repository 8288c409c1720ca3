package catalog

import (
	"net/http"

	"github.com/hupe1980/qconnect/core"
)

// CreateSession creates a session bound to an assistant.
func CreateSession() *core.Operation {
	return &core.Operation{
		Name:        "CreateSession",
		Command:     "create-session",
		Description: "Creates a session for an assistant",
		Method:      http.MethodPost,
		Path:        "/assistants/{assistantId}/sessions",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", true),
			required(bodyString("Name", "name", "Name of the session")),
			bodyString("Description", "description", "Description of the session"),
			bodyRecord("AIAgentConfiguration", "aiAgentConfiguration", "AI agent overrides keyed by agent type"),
			clientToken(),
			tags(),
		},
		Composites:       []core.Composite{tagFilter()},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "Session", Key: "session"}},
		DefaultSelect:    "Session",
		PassThroughField: "AssistantId",
	}
}

// UpdateSession updates a session's description, tag filter or AI agents.
func UpdateSession() *core.Operation {
	return &core.Operation{
		Name:        "UpdateSession",
		Command:     "update-session",
		Description: "Updates a session",
		Method:      http.MethodPost,
		Path:        "/assistants/{assistantId}/sessions/{sessionId}",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", false),
			pathParam("SessionId", "sessionId", true),
			bodyString("Description", "description", "Description of the session"),
			bodyRecord("AIAgentConfiguration", "aiAgentConfiguration", "AI agent overrides keyed by agent type"),
		},
		Composites:       []core.Composite{tagFilter()},
		Mutating:         true,
		Outputs:          []core.Output{{Name: "Session", Key: "session"}},
		DefaultSelect:    "Session",
		PassThroughField: "SessionId",
	}
}

// UpdateSessionData writes custom key/value data into a session.
func UpdateSessionData() *core.Operation {
	return &core.Operation{
		Name:        "UpdateSessionData",
		Command:     "update-session-data",
		Description: "Updates the data stored on a session",
		Method:      http.MethodPatch,
		Path:        "/assistants/{assistantId}/sessions/{sessionId}/data",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", false),
			pathParam("SessionId", "sessionId", true),
			required(bodyList("Data", "data", "Data as {key, value: {stringValue}} records")),
			withDefault(bodyEnum("Namespace", "namespace", "Namespace the data is written to", "Custom"), "Custom"),
		},
		Mutating: true,
		Outputs: []core.Output{
			{Name: "Data", Key: "data"},
			{Name: "Namespace", Key: "namespace"},
			{Name: "SessionArn", Key: "sessionArn"},
			{Name: "SessionId", Key: "sessionId"},
		},
		DefaultSelect:    core.WholeResponse,
		PassThroughField: "SessionId",
	}
}

// SendMessage submits a message to the assistant within a session.
func SendMessage() *core.Operation {
	return &core.Operation{
		Name:        "SendMessage",
		Command:     "send-message",
		Description: "Submits a message to the assistant in a conversation session",
		Method:      http.MethodPost,
		Path:        "/assistants/{assistantId}/sessions/{sessionId}/message",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", false),
			pathParam("SessionId", "sessionId", true),
			required(withDefault(bodyEnum("Type", "type", "Message type", "TEXT"), "TEXT")),
			clientToken(),
		},
		Composites: []core.Composite{
			{
				Name: "Message",
				Key:  "message",
				Fields: []core.Field{
					required(bodyString("Message_Value_Text_Value", "value.text.value", "Message text")),
				},
			},
			{
				Name: "ConversationContext",
				Key:  "conversationContext",
				Fields: []core.Field{
					bodyList("ConversationContext_SelfServiceConversationHistory", "selfServiceConversationHistory", "Prior turns as {turnNumber, inputTranscript, botResponse} records"),
				},
			},
		},
		Mutating: true,
		Outputs: []core.Output{
			{Name: "NextMessageToken", Key: "nextMessageToken"},
			{Name: "RequestMessageId", Key: "requestMessageId"},
		},
		DefaultSelect:    core.WholeResponse,
		PassThroughField: "SessionId",
	}
}

// GetNextMessage retrieves the assistant's reply to a previously sent message.
func GetNextMessage() *core.Operation {
	return &core.Operation{
		Name:        "GetNextMessage",
		Command:     "get-next-message",
		Description: "Retrieves the next message of a conversation session",
		Method:      http.MethodGet,
		Path:        "/assistants/{assistantId}/sessions/{sessionId}/messages/next",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", false),
			pathParam("SessionId", "sessionId", true),
			required(queryString("NextMessageToken", "nextMessageToken", "Token returned by SendMessage or a previous GetNextMessage")),
		},
		Outputs: []core.Output{
			{Name: "ConversationSessionData", Key: "conversationSessionData"},
			{Name: "ConversationState", Key: "conversationState"},
			{Name: "NextMessageToken", Key: "nextMessageToken"},
			{Name: "RequestMessageId", Key: "requestMessageId"},
			{Name: "Response", Key: "response"},
			{Name: "Type", Key: "type"},
		},
		DefaultSelect:    core.WholeResponse,
		PassThroughField: "SessionId",
	}
}

// GetRecommendations long-polls recommendations for a session.
func GetRecommendations() *core.Operation {
	return &core.Operation{
		Name:        "GetRecommendations",
		Command:     "get-recommendations",
		Description: "Retrieves recommendations for the specified session",
		Method:      http.MethodGet,
		Path:        "/assistants/{assistantId}/sessions/{sessionId}/recommendations",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", false),
			pathParam("SessionId", "sessionId", true),
			queryInt("MaxResult", "maxResults", "Maximum number of results per page"),
			queryInt("WaitTimeSecond", "waitTimeSeconds", "Seconds to wait for recommendations to arrive"),
			queryString("NextChunkToken", "nextChunkToken", "Token for the next chunk of a streamed recommendation"),
		},
		Outputs: []core.Output{
			{Name: "Recommendations", Key: "recommendations"},
			{Name: "Triggers", Key: "triggers"},
		},
		DefaultSelect:    "Recommendations",
		PassThroughField: "SessionId",
	}
}

// SearchSessions searches the sessions of an assistant.
func SearchSessions() *core.Operation {
	return &core.Operation{
		Name:        "SearchSessions",
		Command:     "search-sessions",
		Description: "Searches for sessions",
		Method:      http.MethodPost,
		Path:        "/assistants/{assistantId}/searchSessions",
		Fields: []core.Field{
			pathParam("AssistantId", "assistantId", true),
			queryInt("MaxResult", "maxResults", "Maximum number of results per page"),
			queryString("NextToken", "nextToken", "Pagination token"),
		},
		Composites: []core.Composite{searchExpression()},
		Outputs: []core.Output{
			{Name: "NextToken", Key: "nextToken"},
			{Name: "SessionSummaries", Key: "sessionSummaries"},
		},
		DefaultSelect:    "SessionSummaries",
		PassThroughField: "AssistantId",
	}
}
