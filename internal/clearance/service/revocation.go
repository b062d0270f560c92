package service

import (
	"context"
	"strings"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// RevocationAuthority moves clearances to REVOKED. There is no un-revoke.
type RevocationAuthority struct {
	store store.Store
	opts  options
}

func NewRevocationAuthority(st store.Store, opts ...Option) *RevocationAuthority {
	return &RevocationAuthority{store: st, opts: buildOptions(opts)}
}

// Revoke is idempotent: revoking a REVOKED clearance returns it unchanged.
func (r *RevocationAuthority) Revoke(ctx context.Context, id string, req types.RevokeRequest) (types.Clearance, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Clearance{}, apperr.InvalidInput("clearance id is required")
	}

	now := r.opts.clock()
	changed := false
	c, err := r.store.UpdateClearance(ctx, store.ByID(id), func(c *types.Clearance) (bool, error) {
		changed = c.Revoke(now)
		return changed, nil
	})
	if err != nil {
		return types.Clearance{}, r.opts.translate(err, msgClearanceNotFound, "revoke clearance")
	}
	if !changed {
		return c, nil
	}

	r.opts.metrics.IncRevoked()
	desc := "Clearance revoked"
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		desc += ": " + reason
	}
	r.opts.recordEvent(ctx, r.store, types.EventClearanceRevoked, "clearance", c.ID, desc, strings.TrimSpace(req.RevokedBy))
	r.opts.logger.Info("clearance revoked", "clearance_id", c.ID, "personnel_id", c.PersonnelID)
	return c, nil
}
