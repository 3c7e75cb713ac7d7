package paging_test

import (
	"reflect"
	"testing"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/paging"
)

func TestCompute_EmptyList(t *testing.T) {
	p := paging.Compute(0, 10, 1)
	if p.PageCount != 1 || p.StartIndex != 0 || p.EndIndex != 0 {
		t.Errorf("Compute(0,10,1) = %+v, want pageCount=1 start=0 end=0", p)
	}
	if !reflect.DeepEqual(p.Pages, []int{1}) {
		t.Errorf("pages = %v, want [1]", p.Pages)
	}
}

func TestCompute_SliceBounds(t *testing.T) {
	p := paging.Compute(95, 10, 3)
	if p.PageCount != 10 {
		t.Errorf("pageCount = %d, want 10", p.PageCount)
	}
	if p.StartIndex != 20 || p.EndIndex != 30 {
		t.Errorf("bounds = [%d, %d), want [20, 30)", p.StartIndex, p.EndIndex)
	}

	// Final partial page.
	p = paging.Compute(95, 10, 10)
	if p.StartIndex != 90 || p.EndIndex != 95 {
		t.Errorf("last page bounds = [%d, %d), want [90, 95)", p.StartIndex, p.EndIndex)
	}
}

func TestCompute_ClampsCurrentPage(t *testing.T) {
	p := paging.Compute(30, 10, 99)
	if p.Current != 3 {
		t.Errorf("page 99 of 3: current = %d, want 3", p.Current)
	}
	p = paging.Compute(30, 10, 0)
	if p.Current != 1 {
		t.Errorf("page 0: current = %d, want 1", p.Current)
	}
	p = paging.Compute(30, 10, -4)
	if p.Current != 1 {
		t.Errorf("negative page: current = %d, want 1", p.Current)
	}
}

func TestCompute_DegeneratePageSize(t *testing.T) {
	p := paging.Compute(5, 0, 1)
	if p.PageCount != 5 {
		t.Errorf("pageSize 0 treated as 1: pageCount = %d, want 5", p.PageCount)
	}
}

func TestDisplaySequence(t *testing.T) {
	cases := []struct {
		total, current int
		want           []int
	}{
		// Small page counts: everything shown, no ellipsis.
		{1, 1, []int{1}},
		{2, 1, []int{1, 2}},
		{5, 3, []int{1, 2, 3, 4, 5}},

		// Middle of a large range: ellipsis on both sides.
		{20, 10, []int{1, paging.Ellipsis, 9, 10, 11, paging.Ellipsis, 20}},

		// Near the edges: a single ellipsis.
		{10, 1, []int{1, 2, paging.Ellipsis, 10}},
		{10, 10, []int{1, paging.Ellipsis, 9, 10}},

		// Gap of exactly one page collapses to the page, not an ellipsis:
		// between 3 (current+1) and 5 (last) page 4 is shown.
		{5, 2, []int{1, 2, 3, 4, 5}},
		{6, 3, []int{1, 2, 3, 4, 5, 6}},
		{7, 3, []int{1, 2, 3, 4, paging.Ellipsis, 7}},
	}

	for _, c := range cases {
		p := paging.Compute(c.total*10, 10, c.current)
		if !reflect.DeepEqual(p.Pages, c.want) {
			t.Errorf("pages(total=%d, current=%d) = %v, want %v", c.total, c.current, p.Pages, c.want)
		}
	}
}

func TestDisplaySequence_NeverDoubleEllipsis(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			p := paging.Compute(total*7, 7, current)
			for i := 1; i < len(p.Pages); i++ {
				if p.Pages[i] == paging.Ellipsis && p.Pages[i-1] == paging.Ellipsis {
					t.Fatalf("consecutive ellipsis at total=%d current=%d: %v", total, current, p.Pages)
				}
			}
			if p.Pages[0] != 1 {
				t.Fatalf("sequence must start at 1: %v", p.Pages)
			}
			if p.Pages[len(p.Pages)-1] != total {
				t.Fatalf("sequence must end at pageCount %d: %v", total, p.Pages)
			}
		}
	}
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	p := paging.Compute(len(items), 2, 2)
	if got := paging.Slice(items, p); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("page 2: got %v", got)
	}

	p = paging.Compute(len(items), 2, 3)
	if got := paging.Slice(items, p); !reflect.DeepEqual(got, []string{"e"}) {
		t.Errorf("final page: got %v", got)
	}

	p = paging.Compute(0, 2, 1)
	if got := paging.Slice([]string{}, p); len(got) != 0 {
		t.Errorf("empty: got %v", got)
	}
}
