package domain

// Firestore collections shared with the mobile client. Names are part of the
// wire contract and must not change.
const (
	CollectionWallets      = "wallets"
	CollectionTransactions = "transactions"
	CollectionUsers        = "users"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Cloudinary upload folders
const (
	FolderWallets      = "wallets"
	FolderTransactions = "transactions"
	FolderUsers        = "users"
)

// Cascade deletion paging. The loop stops after CascadeMaxPages even if
// transactions remain, surfacing a partial-completion error instead of
// spinning on a misbehaving store.
const (
	CascadePageSize = 100
	CascadeMaxPages = 100
)

// Category describes a selectable expense category.
type Category struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var ExpenseCategories = []Category{
	{Label: "Groceries", Value: "groceries"},
	{Label: "Rent", Value: "rent"},
	{Label: "Utilities", Value: "utilities"},
	{Label: "Transportation", Value: "transportation"},
	{Label: "Entertainment", Value: "entertainment"},
	{Label: "Dining", Value: "dining"},
	{Label: "Health", Value: "health"},
	{Label: "Insurance", Value: "insurance"},
	{Label: "Savings", Value: "savings"},
	{Label: "Clothing", Value: "clothing"},
	{Label: "Personal", Value: "personal"},
	{Label: "Others", Value: "others"},
}

// ValidExpenseCategory reports whether value is a known expense category.
func ValidExpenseCategory(value string) bool {
	for _, c := range ExpenseCategories {
		if c.Value == value {
			return true
		}
	}
	return false
}
