// Package ofx reads bank and credit card statements in OFX/QFX format and
// turns their debits into expenses.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/scold/internal/model"
)

// Entry is one statement debit converted to an expense.
type Entry struct {
	Expense model.Expense
	FITID   string
	Account string
	Type    string
}

// Parser converts OFX statements into expenses.
type Parser struct {
	// DefaultCategory is used when a transaction type gives no hint.
	DefaultCategory string
}

// NewParser returns a parser that files unknown spend under defaultCategory.
func NewParser(defaultCategory string) *Parser {
	if defaultCategory == "" {
		defaultCategory = "Other"
	}
	return &Parser{DefaultCategory: defaultCategory}
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes formatting slips that real bank exports contain.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagRe.ReplaceAllString(content, "$1>")
}

// Parse reads a statement and returns its debits. Credits are skipped.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("parsing statement: %w", err)
	}

	var entries []Entry
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			entries = append(entries, p.convert(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			entries = append(entries, p.convert(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Debug("parsed statement", "debits", len(entries))
	return entries, ctx.Err()
}

func (p *Parser) convert(txns []ofxgo.Transaction, account string) []Entry {
	var out []Entry
	for _, tx := range txns {
		amt, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
		if err != nil || !amt.IsNegative() {
			continue
		}
		posted := tx.DtPosted.Time
		kind := fmt.Sprintf("%v", tx.TrnType)
		out = append(out, Entry{
			Expense: model.Expense{
				Date:        model.NewDate(posted.Year(), posted.Month(), posted.Day()),
				Amount:      model.NewMoney(amt.Neg()),
				Category:    p.category(kind),
				Description: payee(tx),
			},
			FITID:   string(tx.FiTID),
			Account: account,
			Type:    kind,
		})
	}
	return out
}

func (p *Parser) category(trnType string) string {
	switch trnType {
	case "FEE", "SRVCHG":
		return "Bills"
	}
	return p.DefaultCategory
}

var cardPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericNames = map[string]bool{
	"DEBIT": true, "CREDIT": true, "PURCHASE": true, "PAYMENT": true,
	"POS TRANSACTION": true, "CARD PURCHASE": true,
}

// payee picks the most readable merchant name a transaction carries.
func payee(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && genericNames[strings.ToUpper(name)] {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// leading "MM/DD "
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}
