package listing

// Page describes one fixed-size window over a list.
type Page struct {
	Number     int
	Size       int
	Total      int
	TotalPages int
	Start      int // inclusive index into the list
	End        int // exclusive index into the list
}

// Paginate computes page number of a list with total items. The page is
// clamped to [1, TotalPages]; an empty list still has one (empty) page.
func Paginate(total, number, size int) Page {
	if size <= 0 {
		size = 10
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	return Page{
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// FirstItem is the 1-based position of the first item shown, 0 when empty.
func (p Page) FirstItem() int {
	if p.Total == 0 {
		return 0
	}
	return p.Start + 1
}

// Numbers lists the page links to render.
func (p Page) Numbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// Slice cuts the page's window out of items.
func Slice[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return []T{}
	}
	end := p.End
	if end > len(items) {
		end = len(items)
	}
	return items[p.Start:end]
}
