package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

func TestDirectory_CreateAndList(t *testing.T) {
	h := newMemoryHarness(t)

	p, err := h.dir.Create(h.ctx, types.CreatePersonnelRequest{Name: "  Andi  ", Unit: "Kesdam", Category: "VIP"})
	require.NoError(t, err)
	assert.Equal(t, "Andi", p.Name)
	assert.Equal(t, t0, p.CreatedAt)
	assert.NotEmpty(t, p.ID)

	h.person(t, "Budi")

	vips, err := h.dir.List(h.ctx, "VIP", "")
	require.NoError(t, err)
	require.Len(t, vips, 1)
	assert.Equal(t, p.ID, vips[0].ID)

	found, err := h.dir.List(h.ctx, "", "bud")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Budi", found[0].Name)

	assert.Len(t, h.eventsOf(t, types.EventPersonnelCreated), 2)
}

func TestDirectory_Rejections(t *testing.T) {
	h := newMemoryHarness(t)

	_, err := h.dir.Create(h.ctx, types.CreatePersonnelRequest{Category: "VIP"})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = h.dir.Create(h.ctx, types.CreatePersonnelRequest{Name: "Andi"})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = h.dir.Create(h.ctx, types.CreatePersonnelRequest{Name: "Andi", Category: "ALIEN"})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = h.dir.List(h.ctx, "ALIEN", "")
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = h.dir.Lookup(h.ctx, "nobody")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))

	_, err = h.dir.Get(h.ctx, "nobody")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestDirectory_GetNormalizesClearances(t *testing.T) {
	h := newMemoryHarness(t)
	p, c := h.issued(t, "Andi")
	h.screen(t, p, types.FitnessNotFit)

	h.clock.Advance(types.ValidityWindow + time.Second)

	detail, err := h.dir.Get(h.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Andi", detail.Name)
	assert.Len(t, detail.Screenings, 2)
	require.Len(t, detail.Clearances, 1)
	assert.Equal(t, c.ID, detail.Clearances[0].ID)
	assert.Equal(t, types.StatusExpired, detail.Clearances[0].Status)
}
