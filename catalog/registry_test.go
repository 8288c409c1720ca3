package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hupe1980/qconnect/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_DescriptorsValidate(t *testing.T) {
	ops := All()
	require.Len(t, ops, 17)
	for _, op := range ops {
		t.Run(op.Name, func(t *testing.T) {
			require.NoError(t, op.Validate())
			assert.NotEmpty(t, op.Command)
			assert.NotEmpty(t, op.Description)
			_, hasPipeline := op.PipelineField()
			assert.True(t, hasPipeline, "every command binds one positional parameter")
		})
	}
}

func TestCreateAssistant_NameIsPositional(t *testing.T) {
	f, ok := CreateAssistant().PipelineField()
	require.True(t, ok)
	assert.Equal(t, "Name", f.Name)
	assert.True(t, f.Required)
}

func TestAll_MutatingOperations(t *testing.T) {
	var mutating []string
	for _, op := range All() {
		if op.Mutating {
			mutating = append(mutating, op.Name)
		}
	}
	want := []string{
		"CreateAssistant", "CreateSession", "UpdateSession", "UpdateSessionData", "SendMessage",
		"CreateMessageTemplate", "UpdateMessageTemplate", "ActivateMessageTemplate", "PutFeedback",
		"CreateAIAgent", "UpdateAIPrompt", "StartContentUpload",
	}
	if diff := cmp.Diff(want, mutating); diff != "" {
		t.Fatalf("mutating operations mismatch (-want +got):\n%s", diff)
	}
	for _, name := range mutating {
		prefix := strings.ToLower(name)
		assert.True(t,
			strings.HasPrefix(prefix, "create") || strings.HasPrefix(prefix, "update") ||
				strings.HasPrefix(prefix, "activate") || strings.HasPrefix(prefix, "send") ||
				strings.HasPrefix(prefix, "put") || strings.HasPrefix(prefix, "start"),
			name)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := Default()

	op, err := r.Get("SendMessage")
	require.NoError(t, err)
	assert.Equal(t, "send-message", op.Command)

	op, err = r.Get("get-recommendations")
	require.NoError(t, err)
	assert.Equal(t, "GetRecommendations", op.Name)

	op, err = r.Get("putfeedback")
	require.NoError(t, err)
	assert.Equal(t, "PutFeedback", op.Name)

	_, err = r.Get("DeleteAssistant")
	assert.ErrorIs(t, err, core.ErrUnknownOperation)
}

func TestRegistry_ListSorted(t *testing.T) {
	ops := Default().List()
	require.Len(t, ops, 17)
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1].Name, ops[i].Name)
	}
}

func TestRegistry_RejectsDuplicatesAndInvalid(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(GetAssistant()))
	assert.Error(t, r.Register(GetAssistant()))

	bad := GetAssistant()
	bad.Name = "Other"
	bad.Command = "other"
	bad.Path = "/assistants/{assistantId}/{missing}"
	assert.Error(t, r.Register(bad))
}
