package store

import (
	"context"
	"fmt"

	"github.com/okubo/chobo/internal/ledger"
)

// GroupedSums implements ledger.BreakdownSource: one grouped SUM over the
// non-deleted journal rows of a fiscal year, joined through the reference
// tables and restricted to one classification. The month key is the
// substring of the 8-digit date field.
func (s *Store) GroupedSums(ctx context.Context, q ledger.GroupedSumQuery) ([]ledger.GroupedSum, error) {
	var amountCol, joinCol string
	switch q.Side {
	case ledger.PostingDebit:
		amountCol, joinCol = "j.debit_amount", "j.debit_account"
	case ledger.PostingCredit:
		amountCol, joinCol = "j.credit_amount", "j.credit_account"
	default:
		return nil, fmt.Errorf("unknown posting side %q", q.Side)
	}

	// keyCols: code, name, parent rollup code
	var keyCols, groupBy string
	switch q.Granularity {
	case ledger.GranularityAccount:
		keyCols = "a.code, a.name, a.group_code"
		groupBy = "a.code"
	case ledger.GranularityGroup:
		keyCols = "g.code, g.name, g.classification_code"
		groupBy = "g.code"
	case ledger.GranularityClassification:
		keyCols = "c.code, c.name, ''"
		groupBy = "c.code"
	default:
		return nil, fmt.Errorf("unknown granularity %q", q.Granularity)
	}

	query := `SELECT ` + keyCols
	if q.ByMonth {
		query += `, substr(j.date, 5, 2) AS month`
		groupBy += `, month`
	}
	query += `, SUM(` + amountCol + `) AS total
		FROM journal j
		JOIN accounts a ON a.code = ` + joinCol + `
		JOIN account_groups g ON g.code = a.group_code
		JOIN account_classifications c ON c.code = g.classification_code
		WHERE j.deleted = 0 AND j.nendo = ? AND c.code = ?
		GROUP BY ` + groupBy + `
		ORDER BY ` + groupBy

	rows, err := s.reader.QueryContext(ctx, query, q.Nendo, q.ClassificationCode)
	if err != nil {
		return nil, fmt.Errorf("grouped sums: %w", err)
	}
	defer rows.Close()

	var sums []ledger.GroupedSum
	for rows.Next() {
		var gs ledger.GroupedSum
		dest := []any{&gs.Code, &gs.Name, &gs.GroupCode}
		if q.ByMonth {
			dest = append(dest, &gs.Month)
		}
		dest = append(dest, &gs.Total)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan grouped sum: %w", err)
		}
		sums = append(sums, gs)
	}
	return sums, rows.Err()
}
