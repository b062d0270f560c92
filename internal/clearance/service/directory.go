package service

import (
	"context"
	"strings"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

const msgPersonnelNotFound = "personnel not found"

// Directory is the minimal personnel directory the clearance core reads from.
type Directory struct {
	store store.Store
	opts  options
}

func NewDirectory(st store.Store, opts ...Option) *Directory {
	return &Directory{store: st, opts: buildOptions(opts)}
}

func (d *Directory) Lookup(ctx context.Context, id string) (types.Personnel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Personnel{}, apperr.InvalidInput("personnel id is required")
	}
	p, err := d.store.GetPersonnel(ctx, id)
	if err != nil {
		return types.Personnel{}, d.opts.translate(err, msgPersonnelNotFound, "lookup personnel")
	}
	return p, nil
}

func (d *Directory) Create(ctx context.Context, req types.CreatePersonnelRequest) (types.Personnel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return types.Personnel{}, apperr.InvalidInput("name is required")
	}
	category := types.PersonnelCategory(strings.TrimSpace(req.Category))
	if category == "" {
		return types.Personnel{}, apperr.InvalidInput("category is required")
	}
	if !category.Valid() {
		return types.Personnel{}, apperr.InvalidInput("unknown category " + string(category))
	}

	p := types.Personnel{
		ID:        d.opts.newID(),
		Name:      name,
		Rank:      strings.TrimSpace(req.Rank),
		Unit:      strings.TrimSpace(req.Unit),
		Category:  category,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: d.opts.clock(),
	}
	if err := d.store.CreatePersonnel(ctx, p); err != nil {
		return types.Personnel{}, d.opts.translate(err, msgPersonnelNotFound, "create personnel")
	}

	d.opts.recordEvent(ctx, d.store, types.EventPersonnelCreated, "personnel", p.ID,
		"Personnel "+p.Name+" registered", "")
	return p, nil
}

func (d *Directory) List(ctx context.Context, category, search string) ([]types.Personnel, error) {
	f := store.PersonnelFilter{
		Category: types.PersonnelCategory(strings.TrimSpace(category)),
		Search:   strings.TrimSpace(search),
	}
	if f.Category != "" && !f.Category.Valid() {
		return nil, apperr.InvalidInput("unknown category " + string(f.Category))
	}
	out, err := d.store.ListPersonnel(ctx, f)
	if err != nil {
		return nil, d.opts.translate(err, msgPersonnelNotFound, "list personnel")
	}
	if out == nil {
		out = []types.Personnel{}
	}
	return out, nil
}

// Get returns a directory entry with its screenings and clearances. Due
// clearances are expired on the way out, as on a resolve.
func (d *Directory) Get(ctx context.Context, id string) (types.PersonnelDetail, error) {
	p, err := d.Lookup(ctx, id)
	if err != nil {
		return types.PersonnelDetail{}, err
	}

	screenings, err := d.store.ListScreeningsByPersonnel(ctx, p.ID)
	if err != nil {
		return types.PersonnelDetail{}, d.opts.translate(err, msgPersonnelNotFound, "list screenings")
	}
	clearances, err := d.store.ListClearancesByPersonnel(ctx, p.ID)
	if err != nil {
		return types.PersonnelDetail{}, d.opts.translate(err, msgPersonnelNotFound, "list clearances")
	}

	now := d.opts.clock()
	for i, c := range clearances {
		if c.Status != types.StatusValid || !c.ExpiredAt(now) {
			continue
		}
		fresh, err := normalizeClearance(ctx, d.store, d.opts, store.ByID(c.ID), now)
		if err != nil {
			return types.PersonnelDetail{}, err
		}
		clearances[i] = fresh
	}

	if screenings == nil {
		screenings = []types.Screening{}
	}
	if clearances == nil {
		clearances = []types.Clearance{}
	}
	return types.PersonnelDetail{Personnel: p, Screenings: screenings, Clearances: clearances}, nil
}
