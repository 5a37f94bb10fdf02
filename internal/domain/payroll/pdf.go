package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"payclock/internal/domain/payweek"
)

// RenderPDF writes a one-page payslip document and returns its path.
func RenderPDF(payslip Payslip, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, "payslip-"+strconv.Itoa(payslip.RecordNumber)+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", payslip.EmployeeName, payslip.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employer: %s", payslip.Employer))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Week ending: %s", payslip.WeekEnding.Format(payweek.DateLayout)))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Standard time (%gh %gm): %.2f", payslip.Hours, payslip.Minutes, payslip.StandardTimePay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime (%gh %gm): %.2f", payslip.OvertimeHours, payslip.OvertimeMinutes, payslip.OvertimePay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", payslip.GrossPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("UIF: %.2f", payslip.UIF))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %.2f", payslip.TotalDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %.2f", payslip.NetPay))
	pdf.Ln(10)
	if payslip.LoanDeduction != 0 || payslip.NewLoan != 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Loan repayment: %.2f", payslip.LoanDeduction))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("New loan (%s): %.2f", payslip.DisbursementType, payslip.NewLoan))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Loan balance: %.2f", payslip.UpdatedLoanBalance))
		pdf.Ln(10)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Paid to account: %.2f", payslip.PaidToAccount))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
