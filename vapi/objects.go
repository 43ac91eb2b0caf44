package vapi

// ToolInvocation is the normalized form of a tool call dug out of a webhook
// body. ToolCallID and Name are empty when the wrapper shape didn't carry them.
type ToolInvocation struct {
	ToolCallID string
	Name       string
	Arguments  map[string]any
}

type ToolCallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

// Response is the envelope the platform expects back from a tool webhook.
type Response struct {
	Results []ToolCallResult `json:"results"`
}

func NewResponse(toolCallID, result string) *Response {
	return &Response{
		Results: []ToolCallResult{{ToolCallID: toolCallID, Result: result}},
	}
}
