package txfilter_test

import (
	"testing"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/txfilter"
)

// txAdapter is the adapter the card transactions screen uses.
var txAdapter = txfilter.Adapter[domain.CardTransaction]{
	Category:  func(t domain.CardTransaction) string { return t.Category },
	Timestamp: func(t domain.CardTransaction) time.Time { return t.Date },
	SearchFields: func(t domain.CardTransaction) []string {
		return []string{t.Merchant, t.Category}
	},
	SortKeys: map[string]func(a, b domain.CardTransaction) int{
		"date":   func(a, b domain.CardTransaction) int { return txfilter.CompareTime(a.Date, b.Date) },
		"amount": func(a, b domain.CardTransaction) int { return txfilter.CompareFloat64(a.Amount, b.Amount) },
	},
}

func tx(id, category, merchant string, amount float64, age time.Duration) domain.CardTransaction {
	return domain.CardTransaction{
		ID:       id,
		CardID:   "card-1",
		Type:     domain.TransactionTypePurchase,
		Amount:   amount,
		Category: category,
		Merchant: merchant,
		Date:     time.Now().Add(-age),
	}
}

func ids(txns []domain.CardTransaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestFilter_EmptySpecReturnsInputUnchanged(t *testing.T) {
	list := []domain.CardTransaction{
		tx("a", "groceries", "Fresh Mart", 42, time.Hour),
		tx("b", "travel", "Sky Airlines", 300, 2*time.Hour),
	}
	got := txfilter.Filter(list, txfilter.Spec{}, txAdapter)
	if &got[0] != &list[0] {
		t.Error("empty spec should return the input slice itself")
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order changed: %v", ids(got))
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	spec := txfilter.Spec{Category: "travel", Query: "sky", DateRange: txfilter.RangeWeek}
	got := txfilter.Filter([]domain.CardTransaction{}, spec, txAdapter)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}

func TestFilter_CategoryExactMatch(t *testing.T) {
	list := []domain.CardTransaction{
		tx("a", "groceries", "Fresh Mart", 42, time.Hour),
		tx("b", "travel", "Sky Airlines", 300, time.Hour),
		tx("c", "groceries", "Corner Shop", 12, time.Hour),
	}

	got := txfilter.Filter(list, txfilter.Spec{Category: "groceries"}, txAdapter)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("category filter: got %v", ids(got))
	}

	// Exact match: a different casing is a different category.
	got = txfilter.Filter(list, txfilter.Spec{Category: "Groceries"}, txAdapter)
	if len(got) != 0 {
		t.Errorf("category match must be exact, got %v", ids(got))
	}

	// 'all' disables category filtering.
	got = txfilter.Filter(list, txfilter.Spec{Category: "all", SortBy: "date"}, txAdapter)
	if len(got) != 3 {
		t.Errorf("category 'all': got %v", ids(got))
	}
}

func TestFilter_DateRanges(t *testing.T) {
	list := []domain.CardTransaction{
		tx("recent", "misc", "A", 1, 30*time.Minute),
		tx("threeDays", "misc", "B", 1, 72*time.Hour),
		tx("oldWeek", "misc", "C", 1, 8*24*time.Hour),
		tx("ancient", "misc", "D", 1, 90*24*time.Hour),
	}

	week := txfilter.Filter(list, txfilter.Spec{DateRange: txfilter.RangeWeek}, txAdapter)
	if len(week) != 2 || week[0].ID != "recent" || week[1].ID != "threeDays" {
		t.Errorf("week range: got %v", ids(week))
	}

	today := txfilter.Filter(list, txfilter.Spec{DateRange: txfilter.RangeToday}, txAdapter)
	// The 30-minute-old entry may cross midnight; it must at least exclude
	// everything older than a day.
	for _, got := range today {
		if got.ID != "recent" {
			t.Errorf("today range included %s", got.ID)
		}
	}

	all := txfilter.Filter(list, txfilter.Spec{DateRange: txfilter.RangeAll, SortBy: "date"}, txAdapter)
	if len(all) != 4 {
		t.Errorf("all range: got %v", ids(all))
	}
}

func TestFilter_MonthRangeIsCalendarMonth(t *testing.T) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	inMonth := domain.CardTransaction{ID: "in", Category: "misc", Date: monthStart.Add(time.Hour)}
	lastMonth := domain.CardTransaction{ID: "out", Category: "misc", Date: monthStart.Add(-time.Hour)}

	got := txfilter.Filter([]domain.CardTransaction{inMonth, lastMonth}, txfilter.Spec{DateRange: txfilter.RangeMonth}, txAdapter)
	if len(got) != 1 || got[0].ID != "in" {
		t.Errorf("month range: got %v", ids(got))
	}
}

func TestFilter_QueryAnyFieldCaseInsensitive(t *testing.T) {
	list := []domain.CardTransaction{
		tx("a", "groceries", "Fresh Mart", 42, time.Hour),
		tx("b", "travel", "Sky Airlines", 300, time.Hour),
		tx("c", "dining", "martini bar", 55, time.Hour),
	}

	got := txfilter.Filter(list, txfilter.Spec{Query: "MART"}, txAdapter)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("query filter: got %v", ids(got))
	}

	// Matches the category field too, since it is a designated search field.
	got = txfilter.Filter(list, txfilter.Spec{Query: "travel"}, txAdapter)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("query on category: got %v", ids(got))
	}
}

func TestFilter_PredicatesAreANDed(t *testing.T) {
	list := []domain.CardTransaction{
		tx("match", "groceries", "Fresh Mart", 42, time.Hour),
		tx("wrongCategory", "travel", "Fresh Mart", 42, time.Hour),
		tx("wrongQuery", "groceries", "Sky Airlines", 42, time.Hour),
		tx("tooOld", "groceries", "Fresh Mart", 42, 30*24*time.Hour),
	}
	spec := txfilter.Spec{Category: "groceries", Query: "fresh", DateRange: txfilter.RangeWeek}
	got := txfilter.Filter(list, spec, txAdapter)
	if len(got) != 1 || got[0].ID != "match" {
		t.Errorf("AND composition: got %v", ids(got))
	}
}

func TestFilter_StableSortPreservesTies(t *testing.T) {
	// Four entries with equal amounts: relative order must survive sorting.
	list := []domain.CardTransaction{
		tx("first", "misc", "A", 100, time.Hour),
		tx("second", "misc", "B", 100, 2*time.Hour),
		tx("cheap", "misc", "C", 5, 3*time.Hour),
		tx("third", "misc", "D", 100, 4*time.Hour),
	}

	asc := txfilter.Filter(list, txfilter.Spec{SortBy: "amount", SortDir: txfilter.SortAsc}, txAdapter)
	want := []string{"cheap", "first", "second", "third"}
	for i, id := range want {
		if asc[i].ID != id {
			t.Fatalf("asc sort: got %v, want %v", ids(asc), want)
		}
	}

	desc := txfilter.Filter(list, txfilter.Spec{SortBy: "amount", SortDir: txfilter.SortDesc}, txAdapter)
	want = []string{"first", "second", "third", "cheap"}
	for i, id := range want {
		if desc[i].ID != id {
			t.Fatalf("desc sort: got %v, want %v", ids(desc), want)
		}
	}
}

func TestFilter_UnknownSortKeyKeepsOrder(t *testing.T) {
	list := []domain.CardTransaction{
		tx("a", "misc", "A", 3, time.Hour),
		tx("b", "misc", "B", 1, time.Hour),
	}
	got := txfilter.Filter(list, txfilter.Spec{SortBy: "merchantRating"}, txAdapter)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("unknown sort key reordered: %v", ids(got))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	list := []domain.CardTransaction{
		tx("z", "misc", "Z", 9, time.Hour),
		tx("a", "misc", "A", 1, time.Hour),
	}
	_ = txfilter.Filter(list, txfilter.Spec{SortBy: "amount"}, txAdapter)
	if list[0].ID != "z" || list[1].ID != "a" {
		t.Errorf("input mutated: %v", ids(list))
	}
}

func TestFilter_ReferralCommissionAdapter(t *testing.T) {
	// The same engine drives the referral commissions screen.
	ad := txfilter.Adapter[domain.ReferralCommission]{
		Category:  func(c domain.ReferralCommission) string { return string(c.Type) },
		Timestamp: func(c domain.ReferralCommission) time.Time { return c.Date },
		SearchFields: func(c domain.ReferralCommission) []string {
			return []string{c.ReferredName, c.ReferredEmail}
		},
		SortKeys: map[string]func(a, b domain.ReferralCommission) int{
			"amount": func(a, b domain.ReferralCommission) int { return txfilter.CompareFloat64(a.Amount, b.Amount) },
		},
	}

	list := []domain.ReferralCommission{
		{ID: "c1", Type: domain.CommissionTypeDeposit, ReferredName: "Ada Obi", ReferredEmail: "ada@example.com", Amount: 25, Date: time.Now()},
		{ID: "c2", Type: domain.CommissionTypeSignup, ReferredName: "Ben Eze", ReferredEmail: "ben@example.com", Amount: 10, Date: time.Now()},
	}

	got := txfilter.Filter(list, txfilter.Spec{Category: "deposit", Query: "ada"}, ad)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("commission filter: got %d results", len(got))
	}
}

func TestParseDateRange(t *testing.T) {
	cases := map[string]txfilter.DateRange{
		"today": txfilter.RangeToday,
		"WEEK":  txfilter.RangeWeek,
		"month": txfilter.RangeMonth,
		"all":   txfilter.RangeAll,
		"":      txfilter.RangeAll,
		"junk":  txfilter.RangeAll,
	}
	for in, want := range cases {
		if got := txfilter.ParseDateRange(in); got != want {
			t.Errorf("ParseDateRange(%q) = %q, want %q", in, got, want)
		}
	}
}
