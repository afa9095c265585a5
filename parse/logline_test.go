package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyde/payme/models"
)

func TestBatch_LogTransferLine(t *testing.T) {
	res, err := Batch("01/15/2024 TRANSFER TO ACCT 4412 -100.00")
	require.NoError(t, err)
	assert.Equal(t, LogLike, res.Format)
	require.Len(t, res.Accepted, 1)

	got := res.Accepted[0]
	assert.Equal(t, "2024-01-15", got.Date.Format("2006-01-02"))
	assert.Equal(t, models.Money(-10000), got.Amount)
	assert.Equal(t, "Transfer •4412", got.Business)
	assert.Equal(t, "TRANSFER TO ACCT 4412", got.Description)
}

func TestBatch_LogWhitespaceLines(t *testing.T) {
	raw := "01/15/2024  COFFEE SHOP  -4.50\n" +
		"\n" +
		"01/16/2024  PAYROLL DEPOSIT  2000.00\n"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Accepted, 2)
	assert.Equal(t, models.Money(-450), res.Accepted[0].Amount)
	assert.Equal(t, "COFFEE SHOP", res.Accepted[0].Description)
	assert.Equal(t, models.Money(200000), res.Accepted[1].Amount)
}

func TestBatch_LogPipeDelimited(t *testing.T) {
	res, err := Batch("01/15/2024 | COFFEE SHOP | -4.50")
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, "COFFEE SHOP", res.Accepted[0].Description)
	assert.Equal(t, models.Money(-450), res.Accepted[0].Amount)
}

func TestParseLog_TabDelimited(t *testing.T) {
	// Consistent tab counts route to the CSV parser via Detect; the tab
	// strategy still backs LogLike input with ragged lines.
	accepted, rowErrs := parseLog("01/15/2024\tCOFFEE SHOP\t-4.50\nBOOK STORE\t-12.00")
	assert.Len(t, rowErrs, 1)
	require.Len(t, accepted, 1)
	assert.Equal(t, "COFFEE SHOP", accepted[0].Description)
	assert.Equal(t, models.Money(-450), accepted[0].Amount)
}

func TestBatch_LogInlineCurrency(t *testing.T) {
	res, err := Batch("Paid $12.50 at COFFEE SHOP on 01/15/2024")
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, models.Money(1250), res.Accepted[0].Amount)
	assert.Equal(t, "2024-01-15", res.Accepted[0].Date.Format("2006-01-02"))
}

func TestBatch_LogBadLineSkipped(t *testing.T) {
	raw := "01/15/2024  COFFEE SHOP  -4.50\n" +
		"this line is not a transaction\n" +
		"01/16/2024  BOOK STORE  -12.00"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 2)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ReasonRowParse, res.Errors[0].Reason)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, "this line is not a transaction", res.Errors[0].Raw)
}

func TestBatch_LogBadAmountClassified(t *testing.T) {
	// The structure matches but the date slot is impossible; field order is
	// date first, so the date failure wins.
	res, err := Batch("13/32/2024  COFFEE SHOP  -4.50")
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ReasonDateParse, res.Errors[0].Reason)
}
