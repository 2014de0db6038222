package pipeline

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadscout/internal/model"
)

var exportHeader = []string{
	"Lead Name", "Designation", "Company", "Email", "Email Source", "Phone",
	"LinkedIn", "Website", "Industry", "Company Size", "Location", "Tech Stack",
	"Source URL", "Completeness %", "Contact Quality", "Confidence Score",
	"Grade", "Recommended Action",
}

func exportRow(rec model.LeadRecord) []string {
	score, grade, action := "", "", ""
	if rec.Scoring != nil {
		score = strconv.Itoa(rec.Scoring.ConfidenceScore)
		grade = rec.Scoring.Grade
		action = rec.Scoring.RecommendedAction
	}
	return []string{
		rec.Lead.Name,
		rec.Lead.Designation,
		rec.Company.Name,
		rec.Lead.ContactDetails.Email,
		rec.Lead.ContactDetails.EmailSource,
		rec.Lead.ContactDetails.Phone,
		rec.Lead.ContactDetails.LinkedIn,
		rec.Company.Website,
		rec.Company.Industry,
		rec.Company.Size,
		rec.Company.Location,
		rec.Company.TechStack,
		rec.Lead.SourceURL,
		strconv.Itoa(rec.Metadata.DataCompleteness.Percentage),
		rec.Metadata.ContactQuality,
		score,
		grade,
		action,
	}
}

// ExportCSV writes the leads as a CSV table with a header row.
func ExportCSV(w io.Writer, leads []model.LeadRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return eris.Wrap(err, "failed to write csv header")
	}
	for _, rec := range leads {
		if err := cw.Write(exportRow(rec)); err != nil {
			return eris.Wrap(err, "failed to write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "failed to flush csv")
}

// ExportXLSX writes the leads as a single-sheet workbook at path.
func ExportXLSX(path string, leads []model.LeadRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "failed to add worksheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().Value = h
	}
	for _, rec := range leads {
		row := sheet.AddRow()
		for _, v := range exportRow(rec) {
			row.AddCell().Value = v
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "failed to save workbook to %s", path)
	}
	return nil
}
