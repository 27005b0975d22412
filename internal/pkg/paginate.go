package pkg

// PageMeta 分页控件渲染所需的信息
type PageMeta struct {
	Number      int   `json:"number"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Paginator 固定页大小，页码从 1 开始
type Paginator struct {
	PageSize int
}

func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = 10
	}
	return Paginator{PageSize: size}
}

// Normalize 非法页码按第一页处理
func (p Paginator) Normalize(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func (p Paginator) Offset(page int) int {
	return (p.Normalize(page) - 1) * p.PageSize
}

// InRange 页码是否落在已有数据内；越界页码不再计算 offset，避免溢出
func (p Paginator) InRange(page int, total int64) bool {
	pages := (total + int64(p.PageSize) - 1) / int64(p.PageSize)
	return int64(p.Normalize(page)-1) < pages
}

// Meta 越界页码不报错，只是 HasNext=false
func (p Paginator) Meta(page int, total int64) PageMeta {
	page = p.Normalize(page)
	pages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return PageMeta{
		Number:      page,
		PageSize:    p.PageSize,
		TotalCount:  total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrevious: page > 1,
	}
}
