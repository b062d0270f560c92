package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/token"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const msgClearanceNotFound = "clearance not found"

// Validator resolves scanned codes. Every read applies lazy expiry inside
// the store's per-record update, so two checkpoints scanning the same code
// see one consistent state.
type Validator struct {
	store store.Store
	opts  options
}

func NewValidator(st store.Store, opts ...Option) *Validator {
	return &Validator{store: st, opts: buildOptions(opts)}
}

// Resolve looks up a clearance by its exact code. Malformed codes never
// reach the store.
func (v *Validator) Resolve(ctx context.Context, code string) (types.ClearanceView, error) {
	start := time.Now()
	defer v.opts.metrics.ObserveResolve(start)

	code = strings.TrimSpace(code)
	if code == "" {
		return types.ClearanceView{}, apperr.InvalidInput("code is required")
	}
	if _, err := token.Decode(code); err != nil {
		v.opts.metrics.IncResolution("NOT_FOUND")
		return types.ClearanceView{}, apperr.NotFound(msgClearanceNotFound)
	}

	c, err := normalizeClearance(ctx, v.store, v.opts, store.ByCode(code), v.opts.clock())
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			v.opts.metrics.IncResolution("NOT_FOUND")
		}
		return types.ClearanceView{}, err
	}

	view, err := v.view(ctx, c)
	if err != nil {
		return types.ClearanceView{}, err
	}
	v.opts.metrics.IncResolution(string(c.Status))
	return view, nil
}

// Get returns one clearance by id, normalized.
func (v *Validator) Get(ctx context.Context, id string) (types.Clearance, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Clearance{}, apperr.InvalidInput("clearance id is required")
	}
	return normalizeClearance(ctx, v.store, v.opts, store.ByID(id), v.opts.clock())
}

// QR renders the clearance's code as a PNG.
func (v *Validator) QR(ctx context.Context, id string, size int) ([]byte, error) {
	c, err := v.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := token.PNG(c.Code, size)
	if err != nil {
		return nil, apperr.Internal("render qr", err)
	}
	return png, nil
}

func (v *Validator) view(ctx context.Context, c types.Clearance) (types.ClearanceView, error) {
	p, err := v.store.GetPersonnel(ctx, c.PersonnelID)
	if err != nil {
		// A clearance without its personnel is a broken invariant, not a miss.
		if errors.Is(err, store.ErrNotFound) {
			return types.ClearanceView{}, apperr.Internal("resolve clearance: personnel "+c.PersonnelID+" missing", err)
		}
		return types.ClearanceView{}, v.opts.translate(err, msgPersonnelNotFound, "resolve clearance")
	}
	sc, err := v.store.GetScreening(ctx, c.ScreeningID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.ClearanceView{}, apperr.Internal("resolve clearance: screening "+c.ScreeningID+" missing", err)
		}
		return types.ClearanceView{}, v.opts.translate(err, msgClearanceNotFound, "resolve clearance")
	}

	return types.ClearanceView{
		Clearance:          c,
		Personnel:          p.Summary(),
		FitnessStatus:      sc.FitnessStatus,
		FitnessNotes:       sc.FitnessNotes,
		DutyRecommendation: sc.DutyRecommendation,
	}, nil
}

// normalizeClearance expires sel if it is due and returns the stored state.
func normalizeClearance(ctx context.Context, st store.Store, o options, sel store.ClearanceSelector, now time.Time) (types.Clearance, error) {
	expired := false
	c, err := st.UpdateClearance(ctx, sel, func(c *types.Clearance) (bool, error) {
		expired = c.Normalize(now)
		return expired, nil
	})
	if err != nil {
		return types.Clearance{}, o.translate(err, msgClearanceNotFound, "normalize clearance")
	}
	if expired {
		o.metrics.AddExpired("read", 1)
		o.recordEvent(ctx, st, types.EventClearanceExpired, "clearance", c.ID,
			"Clearance expired (valid until "+c.ValidUntil.Format(time.RFC3339)+")", "")
	}
	return c, nil
}
