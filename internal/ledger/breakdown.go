package ledger

import (
	"context"
	"fmt"
	"sort"
)

// Granularity is the rollup level of a breakdown request.
type Granularity string

const (
	GranularityAccount        Granularity = "account"
	GranularityGroup          Granularity = "group"
	GranularityClassification Granularity = "classification"
)

// BreakdownSide selects which side of the journal rows contributes:
// debit only, credit only, or the orientation-signed net of both.
type BreakdownSide string

const (
	SideKarikata BreakdownSide = "karikata"
	SideKasikata BreakdownSide = "kasikata"
	SideNet      BreakdownSide = "net"
)

// TimeUnit selects monthly series or a single annual figure.
type TimeUnit string

const (
	TimeUnitMonth  TimeUnit = "month"
	TimeUnitAnnual TimeUnit = "annual"
)

// BreakdownRequest asks for one rollup of a fiscal year's journal data.
type BreakdownRequest struct {
	Nendo              string        `json:"nendo"`
	ClassificationCode string        `json:"classification_code"`
	Granularity        Granularity   `json:"granularity"`
	Side               BreakdownSide `json:"side"`
	TimeUnit           TimeUnit      `json:"time_unit"`
}

// Validate rejects malformed requests before any query is issued.
func (r BreakdownRequest) Validate() error {
	switch r.Granularity {
	case GranularityAccount, GranularityGroup, GranularityClassification:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidGranularity, r.Granularity)
	}
	switch r.Side {
	case SideKarikata, SideKasikata, SideNet:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBreakdownSide, r.Side)
	}
	switch r.TimeUnit {
	case TimeUnitMonth, TimeUnitAnnual:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTimeUnit, r.TimeUnit)
	}
	return nil
}

// PostingSide names one side of a journal row in grouped-sum queries.
type PostingSide string

const (
	PostingDebit  PostingSide = "debit"
	PostingCredit PostingSide = "credit"
)

// GroupedSumQuery is one grouped SUM over non-deleted journal rows of a
// fiscal year, restricted to accounts under one classification.
type GroupedSumQuery struct {
	Nendo              string
	ClassificationCode string
	Granularity        Granularity
	Side               PostingSide
	ByMonth            bool
}

// GroupedSum is one row of a grouped-sum result. Month is empty for annual
// queries. GroupCode carries the parent rollup code where one exists.
type GroupedSum struct {
	Code      string
	Name      string
	GroupCode string
	Month     string
	Total     int64
}

// BreakdownSource issues raw grouped-aggregate queries against the journal
// joined to the reference tables.
type BreakdownSource interface {
	GroupedSums(ctx context.Context, q GroupedSumQuery) ([]GroupedSum, error)
}

// MonthValue is one (month, value) pair; months without qualifying data are
// omitted, not zero-filled.
type MonthValue struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

// CodeSeries is the monthly series of one rollup code.
type CodeSeries struct {
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	GroupCode string       `json:"group_code,omitempty"`
	Months    []MonthValue `json:"months"`
}

// CodeTotal is the annual figure of one rollup code.
type CodeTotal struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	GroupCode string `json:"group_code,omitempty"`
	Value     int64  `json:"value"`
}

// MonthlyBreakdown pairs a monthly result with its originating request.
type MonthlyBreakdown struct {
	Request BreakdownRequest `json:"request"`
	Series  []CodeSeries     `json:"series"`
}

// AnnualBreakdown pairs an annual result with its originating request.
type AnnualBreakdown struct {
	Request BreakdownRequest `json:"request"`
	Totals  []CodeTotal      `json:"totals"`
}

// BreakdownResult groups monthly and annual results; association with the
// originating request is preserved on each element.
type BreakdownResult struct {
	Monthly []MonthlyBreakdown `json:"monthly"`
	Annual  []AnnualBreakdown  `json:"annual"`
}

// Aggregator rolls journal data up by account granularity, side and time
// unit for reporting.
type Aggregator struct {
	Accounts AccountDirectory
	Sums     BreakdownSource
}

// Aggregate processes each request independently. An unknown classification
// code aborts the entire call: partial results are never returned for a
// batch containing one bad request.
func (a *Aggregator) Aggregate(ctx context.Context, requests []BreakdownRequest) (*BreakdownResult, error) {
	result := &BreakdownResult{}

	for _, req := range requests {
		if err := req.Validate(); err != nil {
			return nil, err
		}
		class, err := a.Accounts.Classification(ctx, req.ClassificationCode)
		if err != nil {
			return nil, fmt.Errorf("classification %q: %w", req.ClassificationCode, err)
		}

		cells, err := a.collect(ctx, req, class)
		if err != nil {
			return nil, err
		}

		if req.TimeUnit == TimeUnitMonth {
			result.Monthly = append(result.Monthly, MonthlyBreakdown{
				Request: req,
				Series:  buildSeries(cells),
			})
		} else {
			result.Annual = append(result.Annual, AnnualBreakdown{
				Request: req,
				Totals:  buildTotals(cells),
			})
		}
	}

	return result, nil
}

// cell is one (code, month) aggregation bucket while a request is being
// assembled. Month is empty for annual requests.
type cell struct {
	code, name, groupCode, month string
	value                        int64
}

func (a *Aggregator) collect(ctx context.Context, req BreakdownRequest, class *AccountClassification) ([]cell, error) {
	byMonth := req.TimeUnit == TimeUnitMonth

	query := func(side PostingSide) ([]GroupedSum, error) {
		return a.Sums.GroupedSums(ctx, GroupedSumQuery{
			Nendo:              req.Nendo,
			ClassificationCode: req.ClassificationCode,
			Granularity:        req.Granularity,
			Side:               side,
			ByMonth:            byMonth,
		})
	}

	switch req.Side {
	case SideKarikata:
		sums, err := query(PostingDebit)
		if err != nil {
			return nil, err
		}
		return sumsToCells(sums, 1), nil
	case SideKasikata:
		sums, err := query(PostingCredit)
		if err != nil {
			return nil, err
		}
		return sumsToCells(sums, 1), nil
	}

	// Net: union both sides per (code, month); a group appearing on only one
	// side still appears, its missing side contributing zero. The display
	// name comes from the debit-side row when present, credit-side otherwise.
	debit, err := query(PostingDebit)
	if err != nil {
		return nil, err
	}
	credit, err := query(PostingCredit)
	if err != nil {
		return nil, err
	}

	sign := int64(1)
	if class.Side == SideCredit {
		sign = -1
	}

	merged := map[string]*cell{}
	var order []string
	upsert := func(s GroupedSum, factor int64) {
		key := s.Code + "\x00" + s.Month
		c, ok := merged[key]
		if !ok {
			c = &cell{code: s.Code, name: s.Name, groupCode: s.GroupCode, month: s.Month}
			merged[key] = c
			order = append(order, key)
		} else if c.name == "" {
			c.name = s.Name
		}
		c.value += factor * s.Total
	}
	for _, s := range debit {
		upsert(s, sign)
	}
	for _, s := range credit {
		upsert(s, -sign)
	}

	cells := make([]cell, 0, len(order))
	for _, key := range order {
		cells = append(cells, *merged[key])
	}
	return cells, nil
}

func sumsToCells(sums []GroupedSum, factor int64) []cell {
	cells := make([]cell, 0, len(sums))
	for _, s := range sums {
		cells = append(cells, cell{
			code: s.Code, name: s.Name, groupCode: s.GroupCode,
			month: s.Month, value: factor * s.Total,
		})
	}
	return cells
}

// fiscalMonthIndex orders months April-first (04..12, 01..03).
func fiscalMonthIndex(month string) int {
	n := 0
	for _, ch := range month {
		n = n*10 + int(ch-'0')
	}
	return (n + 8) % 12
}

func buildSeries(cells []cell) []CodeSeries {
	byCode := map[string]*CodeSeries{}
	var codes []string
	for _, c := range cells {
		s, ok := byCode[c.code]
		if !ok {
			s = &CodeSeries{Code: c.code, Name: c.name, GroupCode: c.groupCode}
			byCode[c.code] = s
			codes = append(codes, c.code)
		}
		s.Months = append(s.Months, MonthValue{Month: c.month, Value: c.value})
	}
	sort.Strings(codes)

	series := make([]CodeSeries, 0, len(codes))
	for _, code := range codes {
		s := byCode[code]
		sort.Slice(s.Months, func(i, j int) bool {
			return fiscalMonthIndex(s.Months[i].Month) < fiscalMonthIndex(s.Months[j].Month)
		})
		series = append(series, *s)
	}
	return series
}

func buildTotals(cells []cell) []CodeTotal {
	byCode := map[string]*CodeTotal{}
	var codes []string
	for _, c := range cells {
		t, ok := byCode[c.code]
		if !ok {
			t = &CodeTotal{Code: c.code, Name: c.name, GroupCode: c.groupCode}
			byCode[c.code] = t
			codes = append(codes, c.code)
		}
		t.Value += c.value
	}
	sort.Strings(codes)

	totals := make([]CodeTotal, 0, len(codes))
	for _, code := range codes {
		totals = append(totals, *byCode[code])
	}
	return totals
}
