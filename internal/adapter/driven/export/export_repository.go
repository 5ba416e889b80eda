package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/cpi-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	// now é substituível nos testes para nomes de arquivo determinísticos.
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

var recordHeaders = []string{"ID", "Sector", "Year", "Month", "State", "CPI"}

func recordRow(r entity.Record) []string {
	return []string{
		r.ID,
		r.Sector,
		strconv.Itoa(r.Year),
		r.Month,
		r.State,
		strconv.FormatFloat(r.Value, 'f', -1, 64),
	}
}

func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write(recordHeaders)
	for _, rec := range report.Records {
		writer.Write(recordRow(rec))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

const (
	recordsSheet = "Records"
	summarySheet = "Summary"
)

func (r *ExportRepositoryImpl) ExportToXLSX(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return "", fmt.Errorf("error preparing XLSX sheet: %w", err)
	}

	for i, header := range recordHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(recordsSheet, cell, header)
	}
	f.SetColWidth(recordsSheet, "A", "A", 38)
	f.SetColWidth(recordsSheet, "B", "F", 16)

	for i, rec := range report.Records {
		row := i + 2
		f.SetCellValue(recordsSheet, fmt.Sprintf("A%d", row), rec.ID)
		f.SetCellValue(recordsSheet, fmt.Sprintf("B%d", row), rec.Sector)
		f.SetCellValue(recordsSheet, fmt.Sprintf("C%d", row), rec.Year)
		f.SetCellValue(recordsSheet, fmt.Sprintf("D%d", row), rec.Month)
		f.SetCellValue(recordsSheet, fmt.Sprintf("E%d", row), rec.State)
		f.SetCellValue(recordsSheet, fmt.Sprintf("F%d", row), rec.Value)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", fmt.Errorf("error creating XLSX summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Source", report.Source},
		{"Year", report.Criteria.Year},
		{"Sector", report.Criteria.Sector},
		{"Records", report.Summary.Count},
		{"Skipped Rows", report.Skipped},
		{"Min CPI", report.Summary.Min},
		{"Max CPI", report.Summary.Max},
		{"Mean CPI", report.Summary.Mean},
		{"Threshold", report.Summary.Threshold},
		{"Above Threshold", report.Summary.AboveThreshold},
	}
	for i, row := range summaryRows {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1])
	}
	f.SetColWidth(summarySheet, "A", "B", 22)

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by CPI Dashboard (Go) | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	drawSectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	title := fmt.Sprintf("  Consumer Price Index - %s %d", report.Criteria.Sector, report.Criteria.Year)
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	source := report.Source
	if len(source) > 80 {
		source = "..." + source[len(source)-77:]
	}
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Source: %s", source)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	drawSectionTitle("Summary")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	s := report.Summary
	summaryText := fmt.Sprintf(
		"Records: %d (skipped rows: %d)\nMin CPI: %.2f\nMax CPI: %.2f\nMean CPI: %.2f\nAbove threshold (%.2f): %d",
		s.Count, report.Skipped, s.Min, s.Max, s.Mean, s.Threshold, s.AboveThreshold,
	)
	pdf.MultiCell(190, 5, tr(summaryText), "", "L", false)
	pdf.Ln(8)

	drawSectionTitle("Records")
	widths := []float64{30, 30, 40, 60, 30}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"Sector", "Year", "Month", "State", "CPI"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, rec := range report.Records {
		cells := []string{rec.Sector, strconv.Itoa(rec.Year), rec.Month, rec.State, fmt.Sprintf("%.2f", rec.Value)}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, tr(c), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(report.Records) == 0 {
		pdf.CellFormat(0, 6, "No records match the selected year and sector.", "", 1, "L", false, 0, "")
	}

	// Cada gráfico ocupa a largura útil da página, mantendo a proporção da imagem.
	for _, chartPath := range report.ChartFiles {
		pdf.AddPage()
		drawSectionTitle(chartTitle(chartPath))
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.ImageOptions(chartPath, pdf.GetX(), pdf.GetY(), 190, 0, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// chartTitle deriva o título a partir do nome do arquivo (<base>_<kind>.png).
func chartTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, kind := range entity.AllChartKinds {
		if strings.HasSuffix(name, "_"+string(kind)) {
			return entity.NewChartSpec(kind, 0).Title
		}
	}
	return name
}

func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
