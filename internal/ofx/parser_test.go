package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bankStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>555001
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250101120000[0:GMT]
<DTEND>20250131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2025011501
<NAME>POS PURCHASE CORNER BAKERY
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250116120000[0:GMT]
<TRNAMT>1500.00
<FITID>2025011601
<NAME>PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20250120120000[0:GMT]
<TRNAMT>-4.00
<FITID>2025012001
<NAME>MONTHLY FEE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20250131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseKeepsOnlyDebits(t *testing.T) {
	entries, err := NewParser("Shopping").Parse(context.Background(), strings.NewReader(bankStatement))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "2025-01-15", first.Expense.Date.String())
	assert.Equal(t, "25.50", first.Expense.Amount.String())
	assert.Equal(t, "Shopping", first.Expense.Category)
	assert.Equal(t, "CORNER BAKERY", first.Expense.Description)
	assert.Equal(t, "2025011501", first.FITID)
	assert.Equal(t, "555001", first.Account)

	fee := entries[1]
	assert.Equal(t, "Bills", fee.Expense.Category)
	assert.Equal(t, "4.00", fee.Expense.Amount.String())
	require.NoError(t, fee.Expense.Validate())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not valid OFX"} {
		_, err := NewParser("").Parse(context.Background(), strings.NewReader(in))
		assert.Error(t, err)
	}
}

func TestPreprocess(t *testing.T) {
	in := "\n\n  <SEVERITY>Info</SEVERITY>\n<CODE\n"
	out := preprocess(in)
	assert.True(t, strings.HasPrefix(out, "<SEVERITY>INFO</SEVERITY>"))
	assert.Contains(t, out, "<CODE>")
}

func TestNewParserDefault(t *testing.T) {
	assert.Equal(t, "Other", NewParser("").DefaultCategory)
}
