package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFormat Format
		wantDelim  rune
	}{
		{
			"comma csv",
			"Date,Description,Amount\n01/15/2024,Coffee Shop,-4.50\n01/16/2024,Payroll,2000.00",
			CSVLike, ',',
		},
		{
			"tab csv",
			"Date\tDescription\tAmount\n01/15/2024\tCoffee\t-4.50",
			CSVLike, '\t',
		},
		{
			"semicolon csv",
			"Date;Description;Amount\n01/15/2024;Coffee;-4.50",
			CSVLike, ';',
		},
		{
			"log lines",
			"01/15/2024 TRANSFER TO ACCT 4412 -100.00\n01/16/2024 COFFEE SHOP -4.50",
			LogLike, 0,
		},
		{
			"inconsistent columns fall back to log",
			"one,two,three\nno delimiters here at all\nfour,five",
			LogLike, 0,
		},
		{
			"empty input",
			"",
			LogLike, 0,
		},
		{
			"blank lines ignored",
			"\n\nDate,Amount\n01/15/2024,-4.50\n",
			CSVLike, ',',
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, delim := Detect(tt.input)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantDelim, delim)
		})
	}
}
