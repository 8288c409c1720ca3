package catalog

import "github.com/hupe1980/qconnect/core"

// Field constructors shared by the descriptors.

func pathParam(name, key string, pipeline bool) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeString, Location: core.InPath, Required: true, Pipeline: pipeline}
}

func queryInt(name, key, desc string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeInteger, Location: core.InQuery, Description: desc}
}

func queryString(name, key, desc string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeString, Location: core.InQuery, Description: desc}
}

func bodyString(name, key, desc string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeString, Location: core.InBody, Description: desc}
}

func bodyInt(name, key, desc string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeInteger, Location: core.InBody, Description: desc}
}

func bodyEnum(name, key, desc string, values ...string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeEnum, Location: core.InBody, Enum: values, Description: desc}
}

func bodyRecord(name, key, desc string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeRecord, Location: core.InBody, Description: desc}
}

func bodyList(name, key, desc string) core.Field {
	return core.Field{Name: name, Key: key, Type: core.TypeList, Location: core.InBody, Description: desc}
}

func required(f core.Field) core.Field {
	f.Required = true
	return f
}

func pipeline(f core.Field) core.Field {
	f.Pipeline = true
	return f
}

func withDefault(f core.Field, v any) core.Field {
	f.Default = v
	return f
}

func tags() core.Field {
	return core.Field{Name: "Tag", Key: "tags", Type: core.TypeMap, Location: core.InBody, Description: "Tags to apply to the resource"}
}

func clientToken() core.Field {
	return core.Field{Name: "ClientToken", Key: "clientToken", Type: core.TypeString, Location: core.InBody, Idempotency: true, Description: "Idempotency token; generated when omitted"}
}

func tagFilter() core.Composite {
	return core.Composite{
		Name: "TagFilter",
		Key:  "tagFilter",
		Fields: []core.Field{
			bodyString("TagFilter_TagCondition_Key", "tagCondition.key", "Tag key to match"),
			bodyString("TagFilter_TagCondition_Value", "tagCondition.value", "Tag value to match"),
			bodyList("TagFilter_AndCondition", "andConditions", "Tag conditions that must all match"),
			bodyList("TagFilter_OrCondition", "orConditions", "Tag conditions of which one must match"),
		},
	}
}

func searchExpression() core.Composite {
	return core.Composite{
		Name: "SearchExpression",
		Key:  "searchExpression",
		Fields: []core.Field{
			required(bodyList("SearchExpression_Filter", "filters", "Filters as {field, operator, value} records")),
		},
	}
}

func messageTemplateContent() core.Composite {
	return core.Composite{
		Name: "Content",
		Key:  "content",
		Fields: []core.Field{
			bodyString("Content_Email_Subject", "email.subject", "Email subject line"),
			bodyString("Content_Email_Body_Html_Content", "email.body.html.content", "HTML email body"),
			bodyString("Content_Email_Body_PlainText_Content", "email.body.plainText.content", "Plain text email body"),
			bodyList("Content_Email_Header", "email.headers", "Email headers as {name, value} records"),
			bodyString("Content_Sms_Body_PlainText_Content", "sms.body.plainText.content", "SMS body"),
		},
	}
}
