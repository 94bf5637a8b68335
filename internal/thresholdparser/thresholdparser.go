// Package thresholdparser reads the disclosure exports that only list
// donations of 10000 EUR or more (2023, 2025 and 2026). The years differ in
// column order, which the layout carries; the walk itself is the same.
package thresholdparser

import (
	"fjacquet/giften-csv/internal/common"
	"fjacquet/giften-csv/internal/dateutils"
	"fjacquet/giften-csv/internal/layout"
	"fjacquet/giften-csv/internal/logging"
	"fjacquet/giften-csv/internal/models"
	"fjacquet/giften-csv/internal/parser"
	"fjacquet/giften-csv/internal/sheet"
)

// Name identifies this parser in log lines.
const Name = "threshold"

// Parser walks a threshold disclosure grid.
type Parser struct {
	parser.BaseParser
}

var _ parser.FullParser = (*Parser)(nil)

// NewParser creates a parser for the given layout.
func NewParser(l layout.Layout, logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(Name, l, logger),
	}
}

// Parse returns one record per row below the header that carries a numeric
// amount once a party and a donor are known. The disclosure threshold is not
// applied: the source is trusted to list only qualifying donations.
func (p *Parser) Parse(grid sheet.Grid) []models.DonationRecord {
	records := []models.DonationRecord{}

	header, ok := p.LocateHeader(grid)
	if !ok {
		return records
	}

	var ctx common.ParseContext
	for row := header + 1; row < grid.Rows(); row++ {
		if grid.IsBlankRow(row) {
			continue
		}
		if record, ok := p.walkRow(grid, row, &ctx); ok {
			records = append(records, record)
		}
	}

	p.LogParsed(records)
	return records
}

func (p *Parser) walkRow(grid sheet.Grid, row int, ctx *common.ParseContext) (models.DonationRecord, bool) {
	l := p.Layout()
	cols := l.Columns
	cell := func(col int) sheet.Cell { return grid.Cell(row, col) }

	before := *ctx

	if party := common.StringValue(cell(cols.Party)); party != "" {
		ctx.SetParty(party)
	}

	// Non-text here is a shifted total; keep the sub-entity present but blank.
	subEntity := cell(cols.SubEntity)
	if name, ok := common.TextValue(subEntity); ok {
		ctx.SetSubEntity(name)
	} else if !subEntity.IsEmpty() {
		ctx.BlankSubEntity()
	}

	if total, err := common.DecimalValue(cell(cols.DeclaredTotal)); err == nil {
		ctx.SetDeclaredTotal(total)
	}

	donorCell := cell(cols.DonorName)
	if donor := common.StringValue(donorCell); donor != "" {
		ctx.SetDonor(donor)
	}

	if address := common.StringValue(cell(cols.DonorAddress)); address != "" {
		ctx.Address = address
	}

	owner := ""
	if l.HasBeneficialOwner() {
		owner = common.StringValue(cell(cols.OwnerName))
	}
	if owner != "" {
		ctx.OwnerName = owner
	} else if !donorCell.IsEmpty() {
		ctx.OwnerName = ""
	}

	if !ctx.Resolved() {
		return models.DonationRecord{}, false
	}

	amountCell := cell(cols.Amount)
	if amountCell.IsEmpty() {
		return models.DonationRecord{}, false
	}
	amount, err := common.DecimalValue(amountCell)
	if err != nil {
		ctx.RestoreIdentity(before)
		p.LogSkippedAmount(row, amountCell, err)
		return models.DonationRecord{}, false
	}

	record := ctx.Record(p.Year(), amount)
	record.BeneficialOwnerCity = ""
	record.Date = dateutils.NormalizeCell(cell(cols.Date))
	record.Note = common.StringValue(cell(cols.Note))
	return record, true
}
