package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type ReceiptGenerator interface {
	GenerateReceipt(data ReceiptData) (string, error)
}

type ReceiptData struct {
	EnrollmentID int
	StudentID    int
	Amount       float64
	Currency     string
	PaidAt       time.Time
	Filename     string // without path; derived when empty
}

type Generator struct {
	RootDir string // storage root, e.g. "./files"
}

func NewGenerator(rootDir string) *Generator {
	return &Generator{RootDir: filepath.Clean(rootDir)}
}

func (g *Generator) GenerateReceipt(data ReceiptData) (string, error) {
	dir := filepath.Join(g.RootDir, "receipts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}

	name := data.Filename
	if name == "" {
		name = fmt.Sprintf("receipt_%d_%d.pdf", data.EnrollmentID, data.PaidAt.Unix())
	}
	path := filepath.Join(dir, name)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 12, "Tuition Payment Receipt")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("Enrollment: #%d", data.EnrollmentID))
	doc.Ln(8)
	doc.Cell(0, 8, fmt.Sprintf("Student: #%d", data.StudentID))
	doc.Ln(8)
	doc.Cell(0, 8, fmt.Sprintf("Amount: %.2f %s", data.Amount, data.Currency))
	doc.Ln(8)
	doc.Cell(0, 8, fmt.Sprintf("Date: %s", data.PaidAt.Format("2006-01-02 15:04")))
	doc.Ln(12)

	doc.SetFont("Helvetica", "I", 9)
	doc.Cell(0, 6, "Generated automatically by the university portal.")

	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write receipt pdf: %w", err)
	}
	return path, nil
}
