package pagination

// Paginator walks an in-memory slice page by page. Pages are 1-based.
type Paginator[T any] struct {
	items       []T
	pageSize    int
	currentPage int
}

// New returns a paginator positioned on page 1. A page size below 1 is
// treated as 1.
func New[T any](items []T, pageSize int) *Paginator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator[T]{items: items, pageSize: pageSize, currentPage: 1}
}

func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

func (p *Paginator[T]) Total() int {
	return len(p.items)
}

func (p *Paginator[T]) CurrentPage() int {
	return p.currentPage
}

// TotalPages is ceil(len/pageSize); zero for an empty list.
func (p *Paginator[T]) TotalPages() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

func (p *Paginator[T]) CurrentData() []T {
	start := (p.currentPage - 1) * p.pageSize
	if start >= len(p.items) {
		return []T{}
	}
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// GoToPage moves to page n. Out-of-range pages are ignored.
func (p *Paginator[T]) GoToPage(n int) {
	if n >= 1 && n <= p.TotalPages() {
		p.currentPage = n
	}
}

func (p *Paginator[T]) Next() {
	if p.HasNextPage() {
		p.currentPage++
	}
}

func (p *Paginator[T]) Prev() {
	if p.HasPrevPage() {
		p.currentPage--
	}
}

func (p *Paginator[T]) HasNextPage() bool {
	return p.currentPage < p.TotalPages()
}

func (p *Paginator[T]) HasPrevPage() bool {
	return p.currentPage > 1
}
