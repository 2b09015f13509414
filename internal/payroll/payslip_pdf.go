package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

// payslipLines renders the stored breakdown as the text block of the PDF.
// Amounts are printed as stored; no recomputation happens here.
func payslipLines(row *Payroll) []string {
	number := ""
	if row.PayslipNumber != nil {
		number = *row.PayslipNumber
	}

	lines := []string{
		fmt.Sprintf("PAYSLIP %s", number),
		fmt.Sprintf("Period: %02d/%d", row.Month, row.Year),
		fmt.Sprintf("Employee: %s", row.EmployeeID.String()),
		"",
		fmt.Sprintf("Base salary:        %14.2f", row.BaseSalary),
		fmt.Sprintf("Overtime +15%%:      %14.2f (%.1f h)", row.OvertimeAmount15, row.Hours15),
		fmt.Sprintf("Overtime +50%%:      %14.2f (%.1f h)", row.OvertimeAmount50, row.Hours50),
		fmt.Sprintf("Gross salary:       %14.2f", row.GrossSalary),
		"",
		fmt.Sprintf("CNSS (employee):    %14.2f", row.CNSSEmployee),
		fmt.Sprintf("ITS:                %14.2f", row.ITS),
		fmt.Sprintf("Loan repayments:    %14.2f", row.LoanDeductions),
		fmt.Sprintf("Salary advances:    %14.2f", row.AdvanceDeductions),
		fmt.Sprintf("Total deductions:   %14.2f", row.TotalDeductions),
		"",
		fmt.Sprintf("NET SALARY:         %14.2f", row.NetSalary),
	}

	if row.IsNegative {
		lines = append(lines, "", "WARNING: deductions exceed gross pay for this period")
	}

	return lines
}

// buildPayslipPDF writes a single-page PDF with one line of text per entry.
// Minimal PDF 1.4 by hand; enough for a printable payslip without pulling
// in a rendering dependency.
func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 790 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
