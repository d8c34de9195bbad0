package usecase_catalog

// 单页上限，limit <= 0 表示不分页
const maxPageSize int64 = 500

func clampPage(skip, limit int64) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}
