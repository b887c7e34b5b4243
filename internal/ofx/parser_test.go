package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/payday/internal/classification"
	"github.com/Veraticus/payday/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
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
<DTSERVER>20240315120000[0:GMT]
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
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DIRECTDEP
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>3200.00
<FITID>2024013101
<NAME>ACME CORP PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>1.27
<FITID>2024013102
<NAME>INTEREST PAID
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>-5.00
<FITID>2024013103
<NAME>MONTHLY SERVICE FEE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
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
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{name: "valid bank statement", ofxData: sampleBankOFX, expectedCount: 6},
		{name: "valid credit card statement", ofxData: sampleCreditCardOFX, expectedCount: 2},
		{name: "invalid OFX data", ofxData: "not valid OFX", expectedError: true},
		{name: "empty OFX", ofxData: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(tt.ofxData))
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
			for _, tx := range transactions {
				assert.NoError(t, tx.Validate())
				assert.Zero(t, tx.ID)
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	transactions, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 6)

	tests := []struct {
		description string
		date        string
		amount      string
		typ         model.TransactionType
		category    model.Category
	}{
		{"STARBUCKS STORE #1234", "2024-01-15", "25.50", model.TypeExpense, model.CategoryMisc},
		{"Whole Foods Market", "2024-01-20", "125.00", model.TypeExpense, model.CategoryMisc},
		{"CHECK #1234", "2024-01-25", "500.00", model.TypeExpense, model.CategoryMisc},
		{"ACME CORP PAYROLL", "2024-01-31", "3200.00", model.TypeIncome, model.CategorySalary},
		{"INTEREST PAID", "2024-01-31", "1.27", model.TypeIncome, model.CategoryBonus},
		{"MONTHLY SERVICE FEE", "2024-01-31", "5.00", model.TypeExpense, model.CategoryBills},
	}

	for i, want := range tests {
		t.Run(want.description, func(t *testing.T) {
			got := transactions[i]
			assert.Equal(t, want.description, got.Description)
			assert.Equal(t, want.date, got.Date.String())
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(want.amount)), "amount %s", got.Amount)
			assert.Equal(t, want.typ, got.Type)
			assert.Equal(t, want.category, got.Category)
		})
	}
}

func TestParseCreditCardTransactions(t *testing.T) {
	transactions, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", transactions[0].Description)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("45.99")))
	assert.Equal(t, model.TypeExpense, transactions[0].Type)
	assert.Equal(t, "2024-01-10", transactions[0].Date.String())

	assert.Equal(t, "NETFLIX.COM", transactions[1].Description)
	assert.True(t, transactions[1].Amount.Equal(decimal.NewFromInt(15)))
}

func TestParseFile_WithClassifier(t *testing.T) {
	detector, err := classification.NewDefaultDetector()
	require.NoError(t, err)

	parser := NewParser(nil, WithClassifier(detector))
	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 6)

	got := make(map[string]model.Category, len(transactions))
	for _, tx := range transactions {
		got[tx.Description] = tx.Category
	}
	assert.Equal(t, model.CategoryFood, got["STARBUCKS STORE #1234"])
	assert.Equal(t, model.CategoryFood, got["Whole Foods Market"])
	assert.Equal(t, model.CategoryMisc, got["CHECK #1234"])
	// Statement types win over description rules.
	assert.Equal(t, model.CategoryBills, got["MONTHLY SERVICE FEE"])

	transactions, err = parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, model.CategoryShopping, transactions[0].Category)
	assert.Equal(t, model.CategoryEntertainment, transactions[1].Category)
}

func TestParseFile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil).ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{name: "remove POS prefix", tx: ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, expected: "STARBUCKS"},
		{name: "remove DEBIT CARD prefix", tx: ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"}, expected: "WHOLE FOODS"},
		{name: "keep clean name", tx: ofxgo.Transaction{Name: "NETFLIX.COM"}, expected: "NETFLIX.COM"},
		{name: "trim whitespace", tx: ofxgo.Transaction{Name: "  AMAZON.COM  "}, expected: "AMAZON.COM"},
		{name: "strip leading date", tx: ofxgo.Transaction{Name: "03/14 CORNER DELI"}, expected: "CORNER DELI"},
		{name: "generic name uses memo", tx: ofxgo.Transaction{Name: "DEBIT", Memo: "CITY PARKING"}, expected: "CITY PARKING"},
		{name: "payee wins", tx: ofxgo.Transaction{Name: "X", Payee: &ofxgo.Payee{Name: "Landlord LLC"}}, expected: "Landlord LLC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDescription(tt.tx))
		})
	}
}

func TestImportedDuplicatesShareHash(t *testing.T) {
	first, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	second, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].GenerateHash(), second[i].GenerateHash())
	}
	assert.NotEqual(t, first[0].GenerateHash(), first[1].GenerateHash())
}

func TestAccounts(t *testing.T) {
	parser := NewParser(nil)

	accounts, err := parser.Accounts(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.Accounts(strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}
