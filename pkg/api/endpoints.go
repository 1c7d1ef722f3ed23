// Package api exposes a trained recaser over HTTP and MCP. Both transports
// dispatch to the same kit.Endpoints.
package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/hazyhaar/recase/pkg/caseclass"
	"github.com/hazyhaar/recase/pkg/kit"
	"github.com/hazyhaar/recase/pkg/recaser"
)

// Shared request/response types used by both transports.

type restoreReq struct {
	Tokens []string
}

type restoreResponse struct {
	Tokens   []string `json:"tokens"`
	Restored string   `json:"restored"`
}

type classifyReq struct {
	Token string
}

// classifyResponse reports the casing class of the token as given, plus the
// pattern the model has stored for its casefolded form, if any.
type classifyResponse struct {
	Token         string `json:"token"`
	Folded        string `json:"folded"`
	Label         string `json:"label"`
	Pattern       string `json:"pattern,omitempty"`
	StoredPattern string `json:"stored_pattern,omitempty"`
}

const maxRestoreTokens = 1000

func restoreEndpoint(h *recaser.Holder) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*restoreReq)
		if len(req.Tokens) == 0 {
			return nil, fmt.Errorf("tokens array is empty")
		}
		if len(req.Tokens) > maxRestoreTokens {
			return nil, fmt.Errorf("too many tokens (max %d, got %d)", maxRestoreTokens, len(req.Tokens))
		}
		restored, err := h.Model().Restore(req.Tokens)
		if err != nil {
			return nil, err
		}
		return restoreResponse{Tokens: restored, Restored: strings.Join(restored, " ")}, nil
	}
}

func classifyEndpoint(h *recaser.Holder) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*classifyReq)
		tc, pattern := caseclass.ClassifyToken(req.Token)
		resp := classifyResponse{
			Token:  req.Token,
			Folded: caseclass.Fold(req.Token),
			Label:  tc.String(),
		}
		if pattern != nil {
			resp.Pattern = pattern.String()
		}
		if stored, ok := h.Model().PatternFor(resp.Folded); ok {
			resp.StoredPattern = stored.String()
		}
		return resp, nil
	}
}

func infoEndpoint(h *recaser.Holder) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return h.Model().Describe(), nil
	}
}
