package ledger

// ViolationCode is the machine-readable identifier of a business-rule
// violation. The set is a stable contract consumed by the UI layer.
type ViolationCode string

const (
	CodeSameAccountCodes    ViolationCode = "SAME_ACCOUNT_CODES"
	CodeInvalidAccountCode  ViolationCode = "INVALID_ACCOUNT_CODE"
	CodeAmountMismatch      ViolationCode = "AMOUNT_MISMATCH"
	CodeInvalidDebitAmount  ViolationCode = "INVALID_DEBIT_AMOUNT"
	CodeInvalidCreditAmount ViolationCode = "INVALID_CREDIT_AMOUNT"
	CodeInvalidDateFormat   ViolationCode = "INVALID_DATE_FORMAT"
	CodeOutOfFiscalYear     ViolationCode = "OUT_OF_FISCAL_YEAR"
	CodeInvalidNendoFormat  ViolationCode = "INVALID_NENDO_FORMAT"
	CodeMissingAmount       ViolationCode = "MISSING_AMOUNT"
	CodeDuplicateAmount     ViolationCode = "DUPLICATE_AMOUNT"
)

// Field paths used in violation payloads.
const (
	PathNendo         = "nendo"
	PathDate          = "date"
	PathDebitAccount  = "debitAccount"
	PathDebitAmount   = "debitAmount"
	PathCreditAccount = "creditAccount"
	PathCreditAmount  = "creditAmount"
	PathAccount       = "account"
)

// Violation is one business-rule failure. Validation failures are normal
// outcomes returned as data, never raised as errors.
type Violation struct {
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
	Path    string        `json:"path"`
}

// violations collects rule failures in evaluation order, dropping
// duplicates of the same (code, path) pair.
type violations struct {
	list []Violation
	seen map[ViolationCode]map[string]bool
}

func (v *violations) add(code ViolationCode, path, message string) {
	if v.seen == nil {
		v.seen = make(map[ViolationCode]map[string]bool)
	}
	if v.seen[code][path] {
		return
	}
	if v.seen[code] == nil {
		v.seen[code] = make(map[string]bool)
	}
	v.seen[code][path] = true
	v.list = append(v.list, Violation{Code: code, Message: message, Path: path})
}
