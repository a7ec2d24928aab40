package fulfillment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWireShape(t *testing.T) {
	env := Build("Xin chào", StatusSuccess, map[string]any{"event_code": "CRV001"})

	data, err := json.Marshal(env)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"fulfillmentResponse": {
			"messages": [
				{"text": {"text": ["Xin chào"]}}
			]
		},
		"sessionInfo": {
			"parameters": {
				"business_status": "success",
				"event_code": "CRV001"
			}
		}
	}`, string(data))
}

func TestBuildNoTextMeansNoMessages(t *testing.T) {
	env := Build("", StatusFail, nil)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// An empty message list, not null: the platform iterates it.
	assert.Contains(t, string(data), `"messages":[]`)
	assert.JSONEq(t, `{
		"fulfillmentResponse": {"messages": []},
		"sessionInfo": {"parameters": {"business_status": "fail"}}
	}`, string(data))
}

func TestBuildExtraWinsOnCollision(t *testing.T) {
	env := Build("x", StatusSuccess, map[string]any{StatusKey: "fail"})
	assert.Equal(t, "fail", env.SessionInfo.Parameters[StatusKey])
}

func TestBuildStatusAlwaysPresent(t *testing.T) {
	env := Build("x", StatusFail, map[string]any{"a": 1, "b": 2})
	assert.Equal(t, string(StatusFail), env.SessionInfo.Parameters[StatusKey])
	assert.Equal(t, 1, env.SessionInfo.Parameters["a"])
	assert.Equal(t, 2, env.SessionInfo.Parameters["b"])
}
