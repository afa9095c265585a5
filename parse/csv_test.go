package parse

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyde/payme/models"
)

func TestBatch_CSV(t *testing.T) {
	raw := "Date,Description,Amount\n01/15/2024,Coffee Shop,-4.50\n01/16/2024,Payroll,2000.00"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Equal(t, CSVLike, res.Format)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Accepted, 2)

	first := res.Accepted[0]
	assert.Equal(t, "2024-01-15", first.Date.Format("2006-01-02"))
	assert.Equal(t, models.Money(-450), first.Amount)
	assert.Equal(t, "Coffee Shop", first.Business)
	assert.Equal(t, "Coffee Shop", first.Description)

	second := res.Accepted[1]
	assert.Equal(t, "2024-01-16", second.Date.Format("2006-01-02"))
	assert.Equal(t, models.Money(200000), second.Amount)
	// "Payroll" carries no business identity
	assert.Equal(t, "Unknown", second.Business)
	assert.Equal(t, "Payroll", second.Description)
}

func TestBatch_CSVCorruptRowSkipped(t *testing.T) {
	raw := "Date,Description,Amount\n" +
		"01/15/2024,Coffee Shop,-4.50\n" +
		"not-a-date,X,abc\n" +
		"01/17/2024,Book Store,-12.00"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 2)
	require.Len(t, res.Errors, 1)

	// Date is checked before amount, so the date failure wins.
	rowErr := res.Errors[0]
	assert.Equal(t, ReasonDateParse, rowErr.Reason)
	assert.Equal(t, 3, rowErr.Row)
	assert.Contains(t, rowErr.Raw, "not-a-date")
}

func TestBatch_CSVBadAmount(t *testing.T) {
	raw := "Date,Description,Amount\n01/15/2024,Coffee Shop,abc\n"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ReasonAmountParse, res.Errors[0].Reason)
}

func TestBatch_CSVBadAmountAmongSignedRows(t *testing.T) {
	// An unparseable amount is a row-level problem; the sign-ambiguity check
	// only weighs cells that parse as valid decimals.
	raw := "Date,Description,Amount\n" +
		"01/15/2024,Coffee Shop,-4.50\n" +
		"01/16/2024,Mystery,abc\n" +
		"01/17/2024,Book Store,-12.00"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 2)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ReasonAmountParse, res.Errors[0].Reason)
	assert.Equal(t, 3, res.Errors[0].Row)
}

func TestBatch_CSVDebitCreditColumns(t *testing.T) {
	raw := "Date,Description,Debit,Credit\n" +
		"01/15/2024,Coffee Shop,4.50,\n" +
		"01/16/2024,Client Payment,,2000.00"

	res, err := Batch(raw)
	require.NoError(t, err)
	require.Len(t, res.Accepted, 2)
	assert.Equal(t, models.Money(-450), res.Accepted[0].Amount)
	assert.Equal(t, models.Money(200000), res.Accepted[1].Amount)
}

func TestBatch_CSVSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			"no date column",
			"Merchant,Amount\nCoffee Shop,-4.50",
		},
		{
			"no amount column",
			"Date,Description\n01/15/2024,Coffee Shop",
		},
		{
			"unsigned single amount column",
			"Date,Description,Amount\n01/15/2024,Coffee Shop,4.50\n01/16/2024,Payroll,2000.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Batch(tt.raw)
			require.Error(t, err)
			var se *SchemaError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestBatch_CSVFuzzyHeaders(t *testing.T) {
	raw := "Posting Date,Desc,Transaction Amount\n01/15/2024,Coffee Shop,-4.50"

	res, err := Batch(raw)
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, models.Money(-450), res.Accepted[0].Amount)
	assert.Equal(t, "Coffee Shop", res.Accepted[0].Description)
}

func TestBatch_CSVCreditAmountHeaderIsAmount(t *testing.T) {
	// "Credit Amount" names the amount column; it must not bind as a credit
	// column and force every value positive.
	raw := "Date,Description,Credit Amount\n" +
		"01/15/2024,Coffee Shop,-4.50\n" +
		"01/16/2024,Client Payment,2000.00"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Accepted, 2)
	assert.Equal(t, models.Money(-450), res.Accepted[0].Amount)
	assert.Equal(t, models.Money(200000), res.Accepted[1].Amount)
}

func TestBatch_CSVBlankRowsSkippedSilently(t *testing.T) {
	raw := "Date,Description,Amount\n01/15/2024,Coffee Shop,-4.50\n,,\n"

	res, err := Batch(raw)
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 1)
	assert.Empty(t, res.Errors)
}

func TestBatch_CSVBankExportFixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/bank_export.csv")
	require.NoError(t, err)

	res, err := Batch(string(raw))
	require.NoError(t, err)
	assert.Equal(t, CSVLike, res.Format)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Accepted, 4)

	assert.Equal(t, models.Money(-450), res.Accepted[0].Amount)
	assert.Equal(t, "STARBUCKS STORE 0412", res.Accepted[0].Business)
	assert.Equal(t, models.Money(200000), res.Accepted[1].Amount)
	assert.Equal(t, "Unknown", res.Accepted[1].Business)
	assert.Equal(t, models.Money(-10000), res.Accepted[2].Amount)
	assert.Equal(t, "Transfer •4412", res.Accepted[2].Business)
	assert.Equal(t, models.Money(5525), res.Accepted[3].Amount)
	assert.Equal(t, "Deposit", res.Accepted[3].Business)
}
