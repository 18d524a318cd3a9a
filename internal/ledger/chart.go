package ledger

// Classification codes of the default chart.
const (
	ClassAssets      = "A"
	ClassLiabilities = "B"
	ClassEquity      = "C"
	ClassRevenue     = "D"
	ClassExpenses    = "E"
)

// DefaultClassifications, DefaultGroups and DefaultAccounts form the chart of
// accounts seeded into a fresh database. Account codes are fixed-width
// 3-digit strings; the leading digit matches the group prefix.
var DefaultClassifications = []AccountClassification{
	{Code: ClassAssets, Name: "Assets", Side: SideDebit},
	{Code: ClassLiabilities, Name: "Liabilities", Side: SideCredit},
	{Code: ClassEquity, Name: "Equity", Side: SideCredit},
	{Code: ClassRevenue, Name: "Revenue", Side: SideCredit},
	{Code: ClassExpenses, Name: "Expenses", Side: SideDebit},
}

var DefaultGroups = []AccountGroup{
	{Code: "A1", Name: "Current assets", ClassificationCode: ClassAssets},
	{Code: "A2", Name: "Fixed assets", ClassificationCode: ClassAssets},
	{Code: "B1", Name: "Current liabilities", ClassificationCode: ClassLiabilities},
	{Code: "B2", Name: "Long-term liabilities", ClassificationCode: ClassLiabilities},
	{Code: "C1", Name: "Capital", ClassificationCode: ClassEquity},
	{Code: "D1", Name: "Sales", ClassificationCode: ClassRevenue},
	{Code: "D2", Name: "Non-operating income", ClassificationCode: ClassRevenue},
	{Code: "E1", Name: "Operating expenses", ClassificationCode: ClassExpenses},
	{Code: "E2", Name: "Non-operating expenses", ClassificationCode: ClassExpenses},
}

var DefaultAccounts = []Account{
	{Code: "101", Name: "Cash", GroupCode: "A1"},
	{Code: "102", Name: "Ordinary deposit", GroupCode: "A1"},
	{Code: "103", Name: "Accounts receivable", GroupCode: "A1"},
	{Code: "151", Name: "Equipment", GroupCode: "A2"},
	{Code: "201", Name: "Accounts payable", GroupCode: "B1"},
	{Code: "202", Name: "Accrued expenses", GroupCode: "B1"},
	{Code: "251", Name: "Loans payable", GroupCode: "B2"},
	{Code: "301", Name: "Capital", GroupCode: "C1"},
	{Code: "401", Name: "Sales", GroupCode: "D1"},
	{Code: "451", Name: "Interest income", GroupCode: "D2"},
	{Code: "501", Name: "Purchases", GroupCode: "E1"},
	{Code: "502", Name: "Supplies expense", GroupCode: "E1"},
	{Code: "503", Name: "Utilities expense", GroupCode: "E1"},
	{Code: "504", Name: "Rent expense", GroupCode: "E1"},
	{Code: "551", Name: "Interest expense", GroupCode: "E2"},
}
