package ledger

import "context"

// Side is the natural-increase side of an account classification:
// "L" (karikata, debit) or "R" (kasikata, credit).
type Side string

const (
	SideDebit  Side = "L"
	SideCredit Side = "R"
)

func ValidSide(s Side) bool {
	return s == SideDebit || s == SideCredit
}

// AccountClassification is the top rollup level (kamoku bunrui). Its side
// decides whether a balance is computed debit-minus-credit or
// credit-minus-debit, and whether it carries forward across fiscal years.
type AccountClassification struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Side Side   `json:"side"`
}

// AccountGroup is the middle rollup level (kamoku).
type AccountGroup struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	ClassificationCode string `json:"classification_code"`
}

// Account is the posting level (saimoku). Classification is denormalized so
// orientation decisions never need a second lookup.
type Account struct {
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	GroupCode      string                `json:"group_code"`
	Classification AccountClassification `json:"classification"`
}

// CarriesForward reports whether the account's balance survives a fiscal
// year boundary. Stock classifications (assets, liabilities, equity) do;
// flow classifications (revenue, expenses) reset.
func (a *Account) CarriesForward() bool {
	switch a.Classification.Code {
	case ClassAssets, ClassLiabilities, ClassEquity:
		return true
	}
	return false
}

// AccountDirectory is the read-only reference-data lookup consulted by the
// validator, projector and aggregator.
type AccountDirectory interface {
	// Account resolves a posting-level account by exact code.
	// Returns ErrAccountNotFound for unknown codes.
	Account(ctx context.Context, code string) (*Account, error)

	// Classification resolves a classification by exact code.
	// Returns ErrClassificationNotFound for unknown codes.
	Classification(ctx context.Context, code string) (*AccountClassification, error)
}
