package agent

import (
	"context"

	"ai-portgate-be/pkg/intent"
)

// BlockchainAuditAgent verifies a booking against the audit chain. The
// chain proof comes back verbatim inside Proofs so callers can re-verify.
type BlockchainAuditAgent struct {
	audit AuditService
}

func NewBlockchainAuditAgent(audit AuditService) *BlockchainAuditAgent {
	return &BlockchainAuditAgent{audit: audit}
}

func (a *BlockchainAuditAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	ref, ok := req.Entities["booking_ref"].(string)
	if !ok || ref == "" {
		return ValidationError("booking_ref",
			"Which booking should I verify? For example \"verify REF123 on blockchain\".", req.TraceID), nil
	}
	if req.AuthToken == "" {
		return Errorf("missing_auth", "Please sign in to run an audit.", req.TraceID), nil
	}

	proof, err := a.audit.Verify(ctx, ref, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}

	resp := OK("Audit trail verified for "+ref+".", map[string]any{
		"intent":      intent.BlockchainAudit,
		"booking_ref": ref,
		"verified":    proof["verified"],
	}, req.TraceID)
	resp.Proofs["source"] = "blockchain-gateway"
	resp.Proofs["chain"] = proof
	return resp, nil
}
