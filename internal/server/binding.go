package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ai-gateway/conversation-relay/internal/conversation"
)

// bindError turns decoder and validator failures into a field-level
// ValidationError that names JSON fields, not Go types.
func bindError(err error) *conversation.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &conversation.ValidationError{Field: jsonPath(fe.Namespace()), Reason: tagReason(fe)}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &conversation.ValidationError{Field: field, Reason: "must be " + jsonKind(typeErr.Type.String())}
	}

	return &conversation.ValidationError{Field: "body", Reason: "must be a valid JSON object"}
}

// jsonPath maps conversationRequest.ConversationHistory[0].Role to
// conversationHistory[0].role.
func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func tagReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return "is invalid"
}

func jsonKind(goType string) string {
	switch {
	case strings.HasPrefix(goType, "[]"):
		return "an array"
	case goType == "string", strings.HasSuffix(goType, "Role"):
		return "a string"
	}
	return "an object"
}
