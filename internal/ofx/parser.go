// Package ofx reads OFX/QFX bank statements into ledger transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/Veraticus/payday/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement transaction types mapped to categories. Anything else is misc.
var categoryByType = map[string]model.Category{
	"INT":       model.CategoryBonus,
	"DIV":       model.CategoryBonus,
	"FEE":       model.CategoryBills,
	"SRVCHG":    model.CategoryBills,
	"ATM":       model.CategoryMisc,
	"DIRECTDEP": model.CategorySalary,
	"DEP":       model.CategorySalary,
}

// Classifier picks a category from a transaction description.
type Classifier interface {
	Classify(description string, txType model.TransactionType) (model.Category, bool)
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger     *slog.Logger
	classifier Classifier
}

// Option configures a Parser.
type Option func(*Parser)

// WithClassifier categorizes transactions that the statement type leaves
// in the misc category.
func WithClassifier(c Classifier) Option {
	return func(p *Parser) {
		p.classifier = c
	}
}

// NewParser creates a new OFX parser.
func NewParser(logger *slog.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// preprocess fixes common formatting issues in OFX files.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX statement. Debits become expenses and credits
// become income, dated by their posting day. Ids are left for the ledger.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		txns, err := p.convertAll(ctx, stmt.BankTranList.Transactions)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txns...)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		txns, err := p.convertAll(ctx, stmt.BankTranList.Transactions)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txns...)
	}

	p.logger.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertAll(ctx context.Context, ofxTxs []ofxgo.Transaction) ([]model.Transaction, error) {
	transactions := make([]model.Transaction, 0, len(ofxTxs))
	for _, ofxTx := range ofxTxs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tx, err := convertTransaction(ofxTx)
		if err != nil {
			p.logger.Warn("Skipping OFX transaction", "fitid", string(ofxTx.FiTID), "error", err)
			continue
		}
		if p.classifier != nil && tx.Category == model.CategoryMisc {
			if c, ok := p.classifier.Classify(tx.Description, tx.Type); ok {
				tx.Category = c
			}
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(4))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	trnType := strings.ToUpper(fmt.Sprintf("%v", ofxTx.TrnType))
	y, m, d := ofxTx.DtPosted.Date()

	tx := model.Transaction{
		Date:        model.DateOf(y, m, d),
		Description: extractDescription(ofxTx),
		Amount:      amount.Abs(),
		Type:        model.TypeIncome,
		Category:    model.CategoryMisc,
	}
	if amount.IsNegative() {
		tx.Type = model.TypeExpense
	}
	if c, ok := categoryByType[trnType]; ok {
		tx.Category = c
	}
	return tx, nil
}

// extractDescription tries to get a clean merchant name from OFX data.
func extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGenericDescription(name string) bool {
	generic := []string{"DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE"}
	return slices.Contains(generic, strings.ToUpper(strings.TrimSpace(name)))
}

// Accounts lists the distinct account ids in a statement, sorted.
func (p *Parser) Accounts(reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var accounts []string
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accounts = append(accounts, string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accounts = append(accounts, string(stmt.CCAcctFrom.AcctID))
		}
	}
	slices.Sort(accounts)
	return slices.Compact(accounts), nil
}
