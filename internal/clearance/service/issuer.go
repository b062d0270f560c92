package service

import (
	"fmt"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/token"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
)

// ClearanceIssuer mints clearances from passing screenings. It does not
// persist; the screening recorder stores both in one transaction.
type ClearanceIssuer struct {
	opts options
}

func NewClearanceIssuer(opts ...Option) *ClearanceIssuer {
	return &ClearanceIssuer{opts: buildOptions(opts)}
}

// Issue builds a VALID clearance for sc, taken by p. The window starts at
// the screening date and lasts types.ValidityWindow.
func (i *ClearanceIssuer) Issue(sc types.Screening, p types.Personnel) (types.Clearance, error) {
	if sc.PersonnelID != p.ID {
		return types.Clearance{}, fmt.Errorf("issue clearance: screening %s does not belong to personnel %s", sc.ID, p.ID)
	}
	if !sc.FitnessStatus.Clears() {
		return types.Clearance{}, fmt.Errorf("issue clearance: fitness status %s does not clear", sc.FitnessStatus)
	}

	c := types.Clearance{
		ID:          i.opts.newID(),
		PersonnelID: sc.PersonnelID,
		ScreeningID: sc.ID,
		Status:      types.StatusValid,
		ValidFrom:   sc.ScreeningDate.UTC(),
		ValidUntil:  sc.ScreeningDate.UTC().Add(types.ValidityWindow),
		IssuedAt:    i.opts.clock(),
		Version:     1,
	}

	code, err := token.Encode(token.Payload{
		ClearanceID: c.ID,
		PersonnelID: c.PersonnelID,
		ValidUntil:  c.ValidUntil,
	})
	if err != nil {
		return types.Clearance{}, fmt.Errorf("issue clearance: %w", err)
	}
	c.Code = code
	return c, nil
}
