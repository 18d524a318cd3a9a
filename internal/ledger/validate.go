package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Validator checks journal requests against the business-rule set and
// returns every applicable violation at once, in a fixed evaluation order,
// so the caller can show all problems together. A non-nil error is an
// infrastructure fault (directory unreachable), never a validation outcome.
type Validator struct {
	Accounts AccountDirectory
}

// ValidateCreate checks a two-sided journal creation request.
func (v *Validator) ValidateCreate(ctx context.Context, req JournalCreate) ([]Violation, error) {
	var vs violations

	v.checkSameAccounts(&vs, req.DebitAccount, req.CreditAccount)
	if err := v.checkAccountExists(ctx, &vs, PathDebitAccount, req.DebitAccount); err != nil {
		return nil, err
	}
	if err := v.checkAccountExists(ctx, &vs, PathCreditAccount, req.CreditAccount); err != nil {
		return nil, err
	}
	dateOK := v.checkDate(&vs, req.Date)
	if dateOK {
		v.checkFiscalRange(&vs, req.Nendo, req.Date)
	}
	debitOK := v.checkAmount(&vs, CodeInvalidDebitAmount, PathDebitAmount, req.DebitAmount)
	creditOK := v.checkAmount(&vs, CodeInvalidCreditAmount, PathCreditAmount, req.CreditAmount)
	if debitOK && creditOK && req.DebitAmount != req.CreditAmount {
		vs.add(CodeAmountMismatch, PathCreditAmount,
			fmt.Sprintf("debit amount %d does not equal credit amount %d", req.DebitAmount, req.CreditAmount))
	}
	v.checkNendoFormat(&vs, req.Nendo)

	return vs.list, nil
}

// ValidateSinglePosting checks a one-sided posting request. It shares the
// account, date and fiscal-range rules with ValidateCreate but requires
// exactly one of the two amounts instead of amount equality.
func (v *Validator) ValidateSinglePosting(ctx context.Context, req SinglePosting) ([]Violation, error) {
	var vs violations

	if err := v.checkAccountExists(ctx, &vs, PathAccount, req.Account); err != nil {
		return nil, err
	}
	dateOK := v.checkDate(&vs, req.Date)
	if dateOK {
		v.checkFiscalRange(&vs, req.Nendo, req.Date)
	}
	switch {
	case req.DebitAmount == nil && req.CreditAmount == nil:
		vs.add(CodeMissingAmount, PathDebitAmount, "either a debit or a credit amount is required")
	case req.DebitAmount != nil && req.CreditAmount != nil:
		vs.add(CodeDuplicateAmount, PathCreditAmount, "only one of debit and credit amount may be supplied")
	case req.DebitAmount != nil:
		v.checkAmount(&vs, CodeInvalidDebitAmount, PathDebitAmount, *req.DebitAmount)
	default:
		v.checkAmount(&vs, CodeInvalidCreditAmount, PathCreditAmount, *req.CreditAmount)
	}
	v.checkNendoFormat(&vs, req.Nendo)

	return vs.list, nil
}

// ValidateUpdate checks a partial update. Only supplied fields are checked;
// unsupplied fields are not re-validated against the persisted row. Amount
// equality re-runs whenever either amount is supplied, with the missing side
// contributing zero, so a one-sided amount update is rejected unless the
// counterpart is supplied with an equal value.
func (v *Validator) ValidateUpdate(ctx context.Context, patch JournalPatch) ([]Violation, error) {
	var vs violations

	if patch.DebitAccount != nil && patch.CreditAccount != nil {
		v.checkSameAccounts(&vs, *patch.DebitAccount, *patch.CreditAccount)
	}
	if patch.DebitAccount != nil {
		if err := v.checkAccountExists(ctx, &vs, PathDebitAccount, *patch.DebitAccount); err != nil {
			return nil, err
		}
	}
	if patch.CreditAccount != nil {
		if err := v.checkAccountExists(ctx, &vs, PathCreditAccount, *patch.CreditAccount); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil {
		dateOK := v.checkDate(&vs, *patch.Date)
		if dateOK && patch.Nendo != nil {
			v.checkFiscalRange(&vs, *patch.Nendo, *patch.Date)
		}
	}

	debitOK, creditOK := true, true
	if patch.DebitAmount != nil {
		debitOK = v.checkAmount(&vs, CodeInvalidDebitAmount, PathDebitAmount, *patch.DebitAmount)
	}
	if patch.CreditAmount != nil {
		creditOK = v.checkAmount(&vs, CodeInvalidCreditAmount, PathCreditAmount, *patch.CreditAmount)
	}
	if (patch.DebitAmount != nil || patch.CreditAmount != nil) && debitOK && creditOK {
		var debit, credit int64
		if patch.DebitAmount != nil {
			debit = *patch.DebitAmount
		}
		if patch.CreditAmount != nil {
			credit = *patch.CreditAmount
		}
		if debit != credit {
			vs.add(CodeAmountMismatch, PathCreditAmount,
				fmt.Sprintf("debit amount %d does not equal credit amount %d", debit, credit))
		}
	}
	if patch.Nendo != nil {
		v.checkNendoFormat(&vs, *patch.Nendo)
	}

	return vs.list, nil
}

func (v *Validator) checkSameAccounts(vs *violations, debit, credit string) {
	if debit != "" && debit == credit {
		vs.add(CodeSameAccountCodes, PathCreditAccount, "debit and credit account codes must differ")
	}
}

func (v *Validator) checkAccountExists(ctx context.Context, vs *violations, path, code string) error {
	_, err := v.Accounts.Account(ctx, code)
	if errors.Is(err, ErrAccountNotFound) {
		vs.add(CodeInvalidAccountCode, path, fmt.Sprintf("account code %q does not exist", code))
		return nil
	}
	return err
}

func (v *Validator) checkDate(vs *violations, date string) bool {
	if _, err := ParseDate(date); err != nil {
		vs.add(CodeInvalidDateFormat, PathDate, fmt.Sprintf("date %q is not a valid YYYYMMDD date", date))
		return false
	}
	return true
}

// checkFiscalRange assumes the date already parsed. A malformed nendo only
// suppresses this check (the range cannot be computed); the format violation
// itself is reported by checkNendoFormat at the end of the list.
func (v *Validator) checkFiscalRange(vs *violations, nendo, date string) {
	if !ValidNendo(nendo) {
		return
	}
	t, err := ParseDate(date)
	if err != nil {
		return
	}
	if !InNendo(nendo, t) {
		start, end := NendoRange(nendo)
		vs.add(CodeOutOfFiscalYear, PathDate,
			fmt.Sprintf("date %s is outside fiscal year %s (%s - %s)",
				date, nendo, start.Format(DateLayout), end.Format(DateLayout)))
	}
}

func (v *Validator) checkAmount(vs *violations, code ViolationCode, path string, amount int64) bool {
	if amount <= 0 {
		vs.add(code, path, fmt.Sprintf("amount must be positive, got %d", amount))
		return false
	}
	return true
}

func (v *Validator) checkNendoFormat(vs *violations, nendo string) {
	if !ValidNendo(nendo) {
		vs.add(CodeInvalidNendoFormat, PathNendo, fmt.Sprintf("fiscal year %q is not a 4-digit number", nendo))
	}
}
