package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/scottyowen4683/aspiredentaldemo/vapi"
)

// Required by the send_structured_email tool schema.
var councilRequiredFields = []string{
	"subject",
	"request_type",
	"resident_name",
	"resident_phone",
	"address",
	"details",
}

func HandleVapiStructuredEmail(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Msg("failed to read webhook body")
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	invocation, err := vapi.ExtractToolInvocation(body, councilRequiredFields...)
	if err != nil {
		log.Warn().Err(err).Msg("error decoding webhook body")
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	args := map[string]any{}
	toolCallID := ""
	if invocation != nil {
		args = invocation.Arguments
		toolCallID = invocation.ToolCallID
		log.Debug().
			Str("tool_call_id", toolCallID).
			Str("tool_name", invocation.Name).
			Msg("extracted tool invocation from webhook body")
	} else {
		log.Warn().Msg("no known tool-call shape in webhook body")
	}

	if missing := vapi.MissingFields(args, councilRequiredFields...); len(missing) > 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	// The webhook is unauthenticated, so the payload never chooses the
	// destination inbox.
	if override := vapi.String(args, "to"); override != "" {
		log.Warn().Str("requested_recipient", override).Msg("ignoring recipient override from webhook payload")
	}

	request := CouncilRequestFromArguments(args)
	if err := SendCouncilRequestEmail(r.Context(), request); err != nil {
		log.Err(err).Msg("failed to send council request email")
		respondError(w, http.StatusBadGateway, fmt.Sprintf("Email delivery failed: %s", err))
		return
	}

	if toolCallID != "" {
		respondJSON(w, http.StatusOK, vapi.NewResponse(toolCallID, "Council request email sent."))
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
