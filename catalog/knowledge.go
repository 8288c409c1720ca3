package catalog

import (
	"net/http"

	"github.com/hupe1980/qconnect/core"
)

// SearchContent searches the content of a knowledge base.
func SearchContent() *core.Operation {
	return &core.Operation{
		Name:        "SearchContent",
		Command:     "search-content",
		Description: "Searches for content in a specified knowledge base",
		Method:      http.MethodPost,
		Path:        "/knowledgeBases/{knowledgeBaseId}/search",
		Fields: []core.Field{
			pathParam("KnowledgeBaseId", "knowledgeBaseId", true),
			queryInt("MaxResult", "maxResults", "Maximum number of results per page"),
			queryString("NextToken", "nextToken", "Pagination token"),
		},
		Composites: []core.Composite{searchExpression()},
		Outputs: []core.Output{
			{Name: "ContentSummaries", Key: "contentSummaries"},
			{Name: "NextToken", Key: "nextToken"},
		},
		DefaultSelect:    "ContentSummaries",
		PassThroughField: "KnowledgeBaseId",
	}
}

// StartContentUpload returns a presigned URL for uploading content.
func StartContentUpload() *core.Operation {
	return &core.Operation{
		Name:        "StartContentUpload",
		Command:     "start-content-upload",
		Description: "Gets a URL to upload content to a knowledge base",
		Method:      http.MethodPost,
		Path:        "/knowledgeBases/{knowledgeBaseId}/upload",
		Fields: []core.Field{
			pathParam("KnowledgeBaseId", "knowledgeBaseId", true),
			required(bodyString("ContentType", "contentType", "MIME type of the content, e.g. text/html")),
			bodyInt("PresignedUrlTimeToLive", "presignedUrlTimeToLive", "Minutes the upload URL stays valid"),
		},
		Mutating: true,
		Outputs: []core.Output{
			{Name: "HeadersToInclude", Key: "headersToInclude"},
			{Name: "UploadId", Key: "uploadId"},
			{Name: "Url", Key: "url"},
			{Name: "UrlExpiry", Key: "urlExpiry"},
		},
		DefaultSelect:    core.WholeResponse,
		PassThroughField: "KnowledgeBaseId",
	}
}
