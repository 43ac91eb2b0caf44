// Package vapi digs structured tool-call arguments out of the webhook bodies
// the voice-assistant platform sends. The platform has shipped several wrapper
// conventions over time (toolCalls, toolCallList, functionCall, arguments as an
// object or as a JSON-encoded string), so extraction is a best-effort search
// over the known shapes rather than a single schema.
package vapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Wrapper objects worth recursing into. Anything else is not a known shape.
var wrapperKeys = []string{"message", "payload", "data"}

const maxSearchDepth = 6

// ExtractToolInvocation finds the first tool invocation in body. The markers
// are argument names whose presence identifies a bare arguments object, for
// bodies that skip the tool-call wrappers entirely. A nil result with a nil
// error means no known shape matched.
func ExtractToolInvocation(body []byte, markers ...string) (*ToolInvocation, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return search(root, markers, 0), nil
}

func search(node any, markers []string, depth int) *ToolInvocation {
	if depth > maxSearchDepth {
		return nil
	}
	obj, ok := node.(map[string]any)
	if !ok {
		return nil
	}

	// Tool-call containers come first: they are the only shapes that carry
	// the toolCallId needed for the response envelope.
	for _, key := range []string{"toolCalls", "toolCallList"} {
		if list, ok := obj[key].([]any); ok && len(list) > 0 {
			if invocation := fromToolCall(list[0]); invocation != nil {
				return invocation
			}
		}
	}
	if call, ok := obj["toolCall"].(map[string]any); ok {
		if invocation := fromToolCall(call); invocation != nil {
			return invocation
		}
	}
	if call, ok := obj["functionCall"].(map[string]any); ok {
		if args := argumentsOf(call); args != nil {
			return &ToolInvocation{Name: asString(call["name"]), Arguments: args}
		}
	}

	// The body itself may already be the arguments.
	if hasMarker(obj, markers) {
		return &ToolInvocation{Arguments: obj}
	}

	for _, key := range wrapperKeys {
		if invocation := search(obj[key], markers, depth+1); invocation != nil {
			return invocation
		}
	}
	return nil
}

func fromToolCall(node any) *ToolInvocation {
	call, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	invocation := &ToolInvocation{ToolCallID: asString(call["id"])}
	if invocation.ToolCallID == "" {
		invocation.ToolCallID = asString(call["toolCallId"])
	}
	if function, ok := call["function"].(map[string]any); ok {
		invocation.Name = asString(function["name"])
		invocation.Arguments = argumentsOf(function)
	}
	if invocation.Arguments == nil {
		if invocation.Name == "" {
			invocation.Name = asString(call["name"])
		}
		invocation.Arguments = argumentsOf(call)
	}
	if invocation.Arguments == nil {
		return nil
	}
	return invocation
}

// argumentsOf handles the string-or-object inconsistency: arguments may arrive
// as a JSON object or as a JSON-encoded string of one.
func argumentsOf(obj map[string]any) map[string]any {
	for _, key := range []string{"arguments", "parameters", "input"} {
		switch value := obj[key].(type) {
		case map[string]any:
			return value
		case string:
			var decoded map[string]any
			if err := json.Unmarshal([]byte(value), &decoded); err == nil {
				return decoded
			}
		}
	}
	return nil
}

func hasMarker(obj map[string]any, markers []string) bool {
	for _, key := range markers {
		value, ok := obj[key]
		if !ok || value == nil {
			continue
		}
		if str, isString := value.(string); isString && strings.TrimSpace(str) == "" {
			continue
		}
		return true
	}
	return false
}

// String returns the named argument rendered as a trimmed string, or "" when
// it is absent or not a scalar.
func String(args map[string]any, key string) string {
	return asString(args[key])
}

// Pretty renders the named argument for display: scalars as-is, structured
// values as indented JSON. Used for free-form metadata fields.
func Pretty(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok || value == nil {
		return ""
	}
	switch value.(type) {
	case string, float64, bool:
		return asString(value)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

// MissingFields returns the required argument names that are absent or blank.
func MissingFields(args map[string]any, required ...string) []string {
	var missing []string
	for _, field := range required {
		if String(args, field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
