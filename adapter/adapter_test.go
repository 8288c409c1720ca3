package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hupe1980/qconnect/catalog"
	"github.com/hupe1980/qconnect/client"
	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/internal/util"
	"github.com/hupe1980/qconnect/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// -------------------- Bind --------------------

func TestBind_RequiredFieldsOnly(t *testing.T) {
	a := New(catalog.CreateSession(), client.NewMockClient())

	b, err := a.Bind(map[string]any{"AssistantId": "a-1", "Name": "triage"})
	require.NoError(t, err)

	req := b.Request
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/assistants/a-1/sessions", req.Path)
	assert.Empty(t, req.Query)

	body := gjson.ParseBytes(req.Body).Map()
	assert.Equal(t, "triage", body["name"].String())
	assert.NotEmpty(t, body["clientToken"].String(), "client token is generated")
	assert.NotContains(t, body, "tagFilter")
	assert.NotContains(t, body, "tags")
	assert.NotContains(t, body, "description")
	assert.NotContains(t, body, "aiAgentConfiguration")
}

func TestBind_MissingRequiredField(t *testing.T) {
	a := New(catalog.CreateSession(), client.NewMockClient())

	_, err := a.Bind(map[string]any{"AssistantId": "a-1"})
	var missing *core.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "CreateSession", missing.Operation)
	assert.Equal(t, "Name", missing.Field)
}

func TestBind_NilValueCountsAsAbsent(t *testing.T) {
	a := New(catalog.GetAssistant(), client.NewMockClient())

	_, err := a.Bind(map[string]any{"AssistantId": nil})
	var missing *core.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "AssistantId", missing.Field)
}

func TestBind_UnknownAndMistypedParameters(t *testing.T) {
	a := New(catalog.GetRecommendations(), client.NewMockClient())

	_, err := a.Bind(map[string]any{"AssistantId": "a", "SessionId": "s", "Bogus": 1})
	var vErr *util.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Bogus", vErr.Field)

	_, err = a.Bind(map[string]any{"AssistantId": "a", "SessionId": "s", "MaxResult": "many"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "MaxResult", vErr.Field)
}

func TestBind_QueryAndCaseInsensitiveNames(t *testing.T) {
	a := New(catalog.GetRecommendations(), client.NewMockClient())

	b, err := a.Bind(map[string]any{"assistantid": "a-1", "SESSIONID": "s-1", "MaxResult": 5, "WaitTimeSecond": int64(10)})
	require.NoError(t, err)
	assert.Equal(t, "/assistants/a-1/sessions/s-1/recommendations", b.Request.Path)
	assert.Equal(t, url.Values{"maxResults": {"5"}, "waitTimeSeconds": {"10"}}, b.Request.Query)
	assert.Nil(t, b.Request.Body)
	assert.Equal(t, int64(5), b.Params["MaxResult"])
}

func TestBind_CaseFoldedDuplicateParameterRejected(t *testing.T) {
	mock := client.NewMockClient()
	a := New(catalog.GetAssistant(), mock)
	params := map[string]any{"AssistantId": "a-1", "assistantid": "a-2"}

	_, err := a.Bind(params)
	var vErr *util.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "duplicate parameter")
	assert.True(t, strings.EqualFold("AssistantId", vErr.Field))

	_, err = a.Run(context.Background(), Input{Params: params})
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, mock.CallCount())
}

func TestBind_CompositeIncludedOnlyWhenSubFieldSet(t *testing.T) {
	a := New(catalog.CreateSession(), client.NewMockClient())

	b, err := a.Bind(map[string]any{
		"AssistantId":                "a-1",
		"Name":                       "triage",
		"TagFilter_TagCondition_Key": "team",
	})
	require.NoError(t, err)

	tf := gjson.GetBytes(b.Request.Body, "tagFilter")
	require.True(t, tf.Exists())
	assert.Equal(t, "team", tf.Get("tagCondition.key").String())
	assert.False(t, tf.Get("tagCondition.value").Exists())
	assert.False(t, tf.Get("andConditions").Exists())
}

func TestBind_NestedCompositePaths(t *testing.T) {
	a := New(catalog.SendMessage(), client.NewMockClient())

	b, err := a.Bind(map[string]any{"AssistantId": "a-1", "SessionId": "s-1", "Message_Value_Text_Value": "hello", "ClientToken": "tok"})
	require.NoError(t, err)

	got, ok := gjson.ParseBytes(b.Request.Body).Value().(map[string]any)
	require.True(t, ok)
	want := map[string]any{
		"type":        "TEXT",
		"clientToken": "tok",
		"message":     map[string]any{"value": map[string]any{"text": map[string]any{"value": "hello"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_DefaultedCompositeMemberAloneIsOmitted(t *testing.T) {
	op := &core.Operation{
		Name:   "Sample",
		Method: "POST",
		Path:   "/things/{id}",
		Fields: []core.Field{{Name: "Id", Key: "id", Type: core.TypeString, Location: core.InPath, Required: true, Pipeline: true}},
		Composites: []core.Composite{{
			Name: "Filter",
			Key:  "filter",
			Fields: []core.Field{
				{Name: "Filter_Operator", Key: "operator", Type: core.TypeEnum, Location: core.InBody, Enum: []string{"EQUALS"}, Default: "EQUALS"},
				{Name: "Filter_Value", Key: "value", Type: core.TypeString, Location: core.InBody},
			},
		}},
		DefaultSelect: core.WholeResponse,
	}
	require.NoError(t, op.Validate())
	a := New(op, client.NewMockClient())

	b, err := a.Bind(map[string]any{"Id": "x"})
	require.NoError(t, err)
	assert.Nil(t, b.Request.Body)

	b, err = a.Bind(map[string]any{"Id": "x", "Filter_Value": "v"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"filter":{"operator":"EQUALS","value":"v"}}`, string(b.Request.Body))
}

func TestBind_ListOfRecords(t *testing.T) {
	a := New(catalog.SearchContent(), client.NewMockClient())

	b, err := a.Bind(map[string]any{
		"KnowledgeBaseId":         "kb-1",
		"SearchExpression_Filter": []map[string]any{{"field": "NAME", "operator": "EQUALS", "value": "faq"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/knowledgeBases/kb-1/search", b.Request.Path)
	assert.JSONEq(t, `{"searchExpression":{"filters":[{"field":"NAME","operator":"EQUALS","value":"faq"}]}}`, string(b.Request.Body))
}

// -------------------- Run: confirmation --------------------

func TestRun_DeclinedConfirmationMakesNoCall(t *testing.T) {
	mock := client.NewMockClient()
	var prompts []Prompt
	a := New(catalog.PutFeedback(), mock, func(o *Options) {
		o.Confirmer = ConfirmerFunc(func(_ context.Context, p Prompt) (bool, error) {
			prompts = append(prompts, p)
			return false, nil
		})
	})

	res, err := a.Run(context.Background(), Input{Params: feedbackParams()})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, "a-1", res.Target)
	assert.Nil(t, res.Value)
	assert.Equal(t, 0, mock.CallCount())
	require.Len(t, prompts, 1)
	assert.Equal(t, Prompt{Operation: "PutFeedback", Target: "a-1"}, prompts[0])
}

func TestRun_LogsLifecycleEvents(t *testing.T) {
	zcore, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapAdapter(zap.New(zcore))
	mock := client.NewMockClient()

	a := New(catalog.PutFeedback(), mock, func(o *Options) { o.Logger = logger })
	res, err := a.Run(context.Background(), Input{Params: feedbackParams()})
	require.NoError(t, err)
	require.True(t, res.Skipped)

	declined := logs.FilterMessage("command.confirm.declined").All()
	require.Len(t, declined, 1)
	fields := declined[0].ContextMap()
	assert.Equal(t, "PutFeedback", fields["operation"])
	assert.Equal(t, res.InvocationID, fields["invocation_id"])
	assert.Equal(t, "a-1", fields["target"])

	res, err = a.Run(context.Background(), Input{Params: feedbackParams(), Force: true})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("command.invoke.start").Len())
	assert.Equal(t, 1, logs.FilterMessage("command.invoke.success").Len())
}

func TestRun_DefaultConfirmerDeniesMutations(t *testing.T) {
	mock := client.NewMockClient()
	res, err := New(catalog.PutFeedback(), mock).Run(context.Background(), Input{Params: feedbackParams()})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_ForceSkipsConfirmation(t *testing.T) {
	mock := client.NewMockClient()
	a := New(catalog.PutFeedback(), mock, func(o *Options) {
		o.Confirmer = ConfirmerFunc(func(context.Context, Prompt) (bool, error) {
			t.Fatal("confirmer must not be asked when forced")
			return false, nil
		})
	})

	res, err := a.Run(context.Background(), Input{Params: feedbackParams(), Force: true})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRun_WhatIfNeverCalls(t *testing.T) {
	mock := client.NewMockClient()
	a := New(catalog.PutFeedback(), mock, func(o *Options) { o.Confirmer = AutoConfirm })

	res, err := a.Run(context.Background(), Input{Params: feedbackParams(), WhatIf: true, Force: true})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_NonMutatingNeedsNoConfirmation(t *testing.T) {
	mock := client.NewMockClient()
	res, err := New(catalog.GetAssistant(), mock).Run(context.Background(), Input{Params: map[string]any{"AssistantId": "a-1"}})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRun_ConfirmerErrorPropagates(t *testing.T) {
	boom := errors.New("tty closed")
	mock := client.NewMockClient()
	a := New(catalog.PutFeedback(), mock, func(o *Options) {
		o.Confirmer = ConfirmerFunc(func(context.Context, Prompt) (bool, error) { return false, boom })
	})
	_, err := a.Run(context.Background(), Input{Params: feedbackParams()})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mock.CallCount())
}

// -------------------- Run: validation before network --------------------

func TestRun_LocalValidationPrecedesCall(t *testing.T) {
	mock := client.NewMockClient()
	a := New(catalog.GetRecommendations(), mock)

	_, err := a.Run(context.Background(), Input{Params: map[string]any{"AssistantId": "a-1"}})
	var missing *core.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)

	_, err = a.Run(context.Background(), Input{Params: map[string]any{"AssistantId": "a-1", "SessionId": "s-1"}, Select: "Nope"})
	var selErr *core.InvalidSelectorError
	require.ErrorAs(t, err, &selErr)

	_, err = a.Run(context.Background(), Input{Params: map[string]any{"AssistantId": "a-1", "SessionId": "s-1"}, Select: "Triggers", PassThru: true})
	require.ErrorAs(t, err, &selErr)

	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_CancelledContextMakesNoCall(t *testing.T) {
	mock := client.NewMockClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(catalog.GetAssistant(), mock).Run(ctx, Input{Params: map[string]any{"AssistantId": "a-1"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_ExactlyOneCallWithBoundFields(t *testing.T) {
	mock := client.NewMockClient()
	_, err := New(catalog.StartContentUpload(), mock).Run(context.Background(), Input{
		Params: map[string]any{"KnowledgeBaseId": "kb-1", "ContentType": "text/html"},
		Force:  true,
	})
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "StartContentUpload", calls[0].Operation)
	assert.Equal(t, "/knowledgeBases/kb-1/upload", calls[0].Path)
	assert.JSONEq(t, `{"contentType":"text/html"}`, string(calls[0].Body))
}

// -------------------- Run: projection --------------------

const recommendationsBody = `{"recommendations":[{"recommendationId":"r-1"}],"triggers":[]}`

func TestRun_Projection(t *testing.T) {
	mock := client.NewMockClient()
	mock.AddResponse("GetRecommendations", recommendationsBody)
	a := New(catalog.GetRecommendations(), mock)
	params := map[string]any{"AssistantId": "a-1", "SessionId": "s-1"}

	// default selector
	res, err := a.Run(context.Background(), Input{Params: params})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"recommendationId": "r-1"}}, res.Value)

	// named output
	res, err = a.Run(context.Background(), Input{Params: params, Select: "Triggers"})
	require.NoError(t, err)
	assert.Empty(t, res.Value)

	// whole response
	res, err = a.Run(context.Background(), Input{Params: params, Select: "*"})
	require.NoError(t, err)
	whole, ok := res.Value.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, whole, "recommendations")
	assert.Contains(t, whole, "triggers")

	// pass-through (legacy switch) and explicit ^Parameter
	res, err = a.Run(context.Background(), Input{Params: params, PassThru: true})
	require.NoError(t, err)
	assert.Equal(t, "s-1", res.Value)

	res, err = a.Run(context.Background(), Input{Params: params, Select: "^AssistantId"})
	require.NoError(t, err)
	assert.Equal(t, "a-1", res.Value)

	assert.Equal(t, 5, mock.CallCount())
}

func TestProject_MissingOutputIsNil(t *testing.T) {
	op := catalog.GetRecommendations()
	a := New(op, client.NewMockClient())
	sel, err := core.ParseSelector(op, "Triggers")
	require.NoError(t, err)

	v, err := a.Project(core.Success([]byte(`{"recommendations":[]}`)), sel, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = a.Project(core.Success([]byte(`not json`)), sel, nil)
	assert.Error(t, err)
}

func TestProject_PreservesIntegerPrecision(t *testing.T) {
	op := catalog.GetRecommendations()
	a := New(op, client.NewMockClient())
	sel, err := core.ParseSelector(op, "*")
	require.NoError(t, err)

	body := `{"big":9007199254740993,"ratio":1.5,"huge":123456789012345678901234567890,"items":[1,2]}`
	v, err := a.Project(core.Success([]byte(body)), sel, nil)
	require.NoError(t, err)

	want := map[string]any{
		"big":   int64(9007199254740993),
		"ratio": 1.5,
		"huge":  json.Number("123456789012345678901234567890"),
		"items": []any{int64(1), int64(2)},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoke_EmptyBodyBecomesEmptyObject(t *testing.T) {
	a := New(catalog.GetAssistant(), core.InvokerFunc(func(context.Context, *core.Request) core.Envelope {
		return core.Envelope{StatusCode: 204}
	}))
	env := a.Invoke(context.Background(), &core.Request{Operation: "GetAssistant"})
	require.True(t, env.OK())
	assert.JSONEq(t, `{}`, string(env.Body))
}

// -------------------- Run: error handling --------------------

func TestRun_NameResolutionFailureIsClarified(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: "wisdom.nowhere-1.amazonaws.com", IsNotFound: true}
	original := &url.Error{Op: "Get", URL: "https://wisdom.nowhere-1.amazonaws.com/assistants/a-1", Err: &net.OpError{Op: "dial", Net: "tcp", Err: dnsErr}}
	mock := client.NewMockClient()
	mock.AddError("GetAssistant", original)

	_, err := New(catalog.GetAssistant(), mock).Run(context.Background(), Input{Params: map[string]any{"AssistantId": "a-1"}})
	require.Error(t, err)

	var tErr *core.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "wisdom.nowhere-1.amazonaws.com", tErr.Endpoint)
	assert.Contains(t, err.Error(), "unable to resolve service endpoint")
	assert.ErrorIs(t, err, core.ErrNameResolution)
	assert.Same(t, original, errors.Unwrap(err))

	var gotDNS *net.DNSError
	require.ErrorAs(t, err, &gotDNS)
	assert.Same(t, dnsErr, gotDNS)
}

func TestRun_OtherErrorsPropagateUnchanged(t *testing.T) {
	svcErr := &core.ServiceError{Operation: "GetAssistant", StatusCode: 404, Code: "ResourceNotFoundException"}
	mock := client.NewMockClient()
	mock.AddError("GetAssistant", svcErr)

	res, err := New(catalog.GetAssistant(), mock).Run(context.Background(), Input{Params: map[string]any{"AssistantId": "a-1"}})
	assert.Same(t, svcErr, err)
	assert.False(t, errors.Is(err, core.ErrNameResolution))
	assert.Nil(t, res.Value)
	assert.NotEmpty(t, res.InvocationID)
}

// -------------------- PromptConfirmer --------------------

func TestPromptConfirmer(t *testing.T) {
	for _, tc := range []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	} {
		var out bytes.Buffer
		c := NewPromptConfirmer(strings.NewReader(tc.answer), &out)
		ok, err := c.Confirm(context.Background(), Prompt{Operation: "SendMessage", Target: "s-1"})
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "answer %q", tc.answer)
		assert.Contains(t, out.String(), `Performing the operation "SendMessage" on target "s-1".`)
	}
}

func TestPromptConfirmer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	ok, err := NewPromptConfirmer(strings.NewReader("y\n"), &out).Confirm(ctx, Prompt{})
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestPromptConfirmer_CancelWhileWaitingKeepsAnswer(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	c := NewPromptConfirmer(pr, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err := c.Confirm(ctx, Prompt{Operation: "SendMessage", Target: "s-1"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = pw.Write([]byte("y\n")) }()

	ok, err = c.Confirm(context.Background(), Prompt{Operation: "SendMessage", Target: "s-1"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func feedbackParams() map[string]any {
	return map[string]any{
		"AssistantId": "a-1",
		"TargetId":    "r-1",
		"TargetType":  "RECOMMENDATION",
		"ContentFeedback_GenerativeContentFeedbackData_Relevance": "HELPFUL",
	}
}
