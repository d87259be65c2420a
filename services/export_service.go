package services

import (
	"safra-backend/entity"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Registros"

// ExportXLSX builds the spreadsheet behind the dashboard's download
// button: one row per (already filtered) record.
func ExportXLSX(records []entity.HarvestRecord, customers []entity.Customer, crops []entity.Crop) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []any{
		"Registro", "Data de Envio", "Cliente", "Propriedade", "Cidade", "UF",
		"Cultura", "Área Total (ha)", "Área Plantada (ha)", "Visitas", "Status",
	}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i := range records {
		rec := &records[i]
		row := []any{
			rec.RecordNumber,
			rec.SubmissionDate.Format("02/01/2006"),
			ResolveCustomerName(rec, customers),
			rec.PropertyName,
			rec.City,
			rec.State,
			ResolveCropName(rec.CropID, crops),
			rec.TotalArea,
			rec.PlantedArea,
			len(rec.Visits),
			rec.Status,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
