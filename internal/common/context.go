package common

import (
	"fjacquet/giften-csv/internal/models"

	"github.com/shopspring/decimal"
)

// ParseContext carries the most recently seen values of a disclosure sheet
// down through the rows that leave them blank. One context belongs to one
// pass over one grid.
type ParseContext struct {
	Party    string
	HasParty bool

	// SubEntity is absent until a sub-entity cell is seen. Present with an
	// empty value means the column was explicitly cleared.
	SubEntity    string
	HasSubEntity bool

	Donor    string
	HasDonor bool
	Address  string

	OwnerName string
	OwnerCity string

	DeclaredTotal decimal.NullDecimal
}

// SetParty makes party the carried party.
func (c *ParseContext) SetParty(party string) {
	c.Party = party
	c.HasParty = true
}

// SetDonor replaces the carried donor and leaves the address alone.
func (c *ParseContext) SetDonor(name string) {
	c.Donor = name
	c.HasDonor = true
}

// StartDonor marks the start of a new donor block: donor and address are
// replaced together.
func (c *ParseContext) StartDonor(name, address string) {
	c.SetDonor(name)
	c.Address = address
}

// SetSubEntity makes name the carried sub-entity.
func (c *ParseContext) SetSubEntity(name string) {
	c.SubEntity = name
	c.HasSubEntity = true
}

// ClearSubEntity forgets the sub-entity entirely.
func (c *ParseContext) ClearSubEntity() {
	c.SubEntity = ""
	c.HasSubEntity = false
}

// BlankSubEntity keeps the sub-entity present but empty.
func (c *ParseContext) BlankSubEntity() {
	c.SetSubEntity("")
}

// SetDeclaredTotal records the donor's declared yearly total.
func (c *ParseContext) SetDeclaredTotal(total decimal.Decimal) {
	c.DeclaredTotal = decimal.NullDecimal{Decimal: total, Valid: true}
}

// Resolved reports whether both a party and a donor are known.
func (c *ParseContext) Resolved() bool {
	return c.HasParty && c.HasDonor
}

// RestoreIdentity puts back the party, donor, address and beneficial owner
// of prev. It is used when a row turns out not to be a donation line: only
// its sub-entity and declared-total updates may outlive it.
func (c *ParseContext) RestoreIdentity(prev ParseContext) {
	c.Party, c.HasParty = prev.Party, prev.HasParty
	c.Donor, c.HasDonor = prev.Donor, prev.HasDonor
	c.Address = prev.Address
	c.OwnerName = prev.OwnerName
	c.OwnerCity = prev.OwnerCity
}

// Record builds a donation from the carried values. Per-line fields (date,
// note, and for some years the beneficial owner) are filled in by the caller.
func (c *ParseContext) Record(year int, amount decimal.Decimal) models.DonationRecord {
	total := models.NoAmount()
	if c.DeclaredTotal.Valid {
		total = models.SomeAmount(c.DeclaredTotal.Decimal)
	}
	return models.DonationRecord{
		Year:                year,
		Party:               c.Party,
		SubEntity:           c.SubEntity,
		DonorName:           c.Donor,
		DonorAddress:        c.Address,
		BeneficialOwnerName: c.OwnerName,
		BeneficialOwnerCity: c.OwnerCity,
		Amount:              amount,
		DeclaredTotal:       total,
	}
}
