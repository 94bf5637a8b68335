// Package detailparser reads the itemized disclosure export (the 2024
// layout, threshold 1000 EUR). Every donation line of a donor is its own row;
// party, donor and the donor's declared total are written once at the top of
// a block and left blank below it.
package detailparser

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
const Name = "detail"

// Parser walks an itemized disclosure grid.
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
// amount. A grid without a header yields no records.
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
	cols := p.Layout().Columns
	cell := func(col int) sheet.Cell { return grid.Cell(row, col) }

	party := common.StringValue(cell(cols.Party))
	if party == "" && !ctx.HasParty {
		return models.DonationRecord{}, false
	}

	before := *ctx
	if party != "" {
		ctx.SetParty(party)
	}

	if donor := common.StringValue(cell(cols.DonorName)); donor != "" {
		ctx.StartDonor(donor, common.StringValue(cell(cols.DonorAddress)))
	}

	// A number in the sub-entity column is a misaligned amount, not a name.
	subEntity := cell(cols.SubEntity)
	if name, ok := common.TextValue(subEntity); ok {
		ctx.SetSubEntity(name)
	} else if !subEntity.IsEmpty() {
		ctx.ClearSubEntity()
	}

	if total, err := common.DecimalValue(cell(cols.DeclaredTotal)); err == nil {
		ctx.SetDeclaredTotal(total)
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
	record.BeneficialOwnerName = common.StringValue(cell(cols.OwnerName))
	record.BeneficialOwnerCity = common.StringValue(cell(cols.OwnerCity))
	record.Date = dateutils.NormalizeCell(cell(cols.Date))
	record.Note = common.StringValue(cell(cols.Note))
	return record, true
}
